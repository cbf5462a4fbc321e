package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"menuscan/internal/api"
	"menuscan/internal/config"
	"menuscan/internal/costs"
	"menuscan/internal/extraction"
	"menuscan/internal/menuitem"
	"menuscan/internal/restaurant"
	"menuscan/internal/review"
	"menuscan/internal/stats"
	"menuscan/internal/todo"
	"menuscan/internal/upload"
)

const usage = `menuscan <command> [args]

Commands:
  upload -restaurant <id> <image>   upload a menu photo and run OCR
  history                           list processed extractions
  view <extraction-id>              show an extraction's text
  edit <extraction-id>              edit and save corrected text
  validate <extraction-id>          run NLP validation on an extraction
  delete <extraction-id>            delete an extraction
  menu <subcommand>                 manage menu items (list|add|edit|delete|image)
  restaurants                       list known restaurants
  todos <subcommand>                manage todos (list|add|done|rm)
  stats                             show visitor statistics
  costs [-period month|year]        show cloud cost breakdown
`

// app bundles the services every subcommand draws from.
type app struct {
	cfg         *config.Config
	client      *api.Client
	uploads     *upload.Service
	extractions *extraction.Service
	extRepo     extraction.Repository
	validator   review.Validator
	menu        *menuitem.Service
	restaurants *restaurant.Service
	stats       *stats.Service
	costs       *costs.Service
	todos       *todo.Service
}

func newApp() *app {
	cfg := config.Load()
	client := api.NewClient(cfg.APIBaseURL)
	extRepo := extraction.NewHTTPRepository(client)

	var cache *costs.Cache
	if c, err := costs.OpenCache(cfg.CacheDir); err == nil {
		cache = c
	} else {
		log.Printf("[main] cost cache unavailable: %v", err)
	}

	return &app{
		cfg:         cfg,
		client:      client,
		uploads:     upload.NewService(client),
		extractions: extraction.NewService(extRepo, cfg.ImageBaseURL),
		extRepo:     extRepo,
		validator:   review.NewHTTPValidator(client),
		menu:        menuitem.NewService(menuitem.NewHTTPRepository(client), cfg.ImageBaseURL),
		restaurants: restaurant.NewService(client),
		stats:       stats.NewService(client),
		costs:       costs.NewService(client, cache),
		todos:       todo.NewService(client),
	}
}

func main() {
	_ = godotenv.Load()
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a := newApp()
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "upload":
		err = a.cmdUpload(ctx, os.Args[2:])
	case "history":
		err = a.cmdHistory(ctx)
	case "view":
		err = a.cmdView(ctx, os.Args[2:])
	case "edit":
		err = a.cmdEdit(ctx, os.Args[2:])
	case "validate":
		err = a.cmdValidate(ctx, os.Args[2:])
	case "delete":
		err = a.cmdDelete(ctx, os.Args[2:])
	case "menu":
		err = a.cmdMenu(ctx, os.Args[2:])
	case "restaurants":
		err = a.cmdRestaurants(ctx)
	case "todos":
		err = a.cmdTodos(ctx, os.Args[2:])
	case "stats":
		err = a.cmdStats(ctx)
	case "costs":
		err = a.cmdCosts(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("menuscan: %v", err)
	}
}

// --------------------------------------------------
// Upload
// --------------------------------------------------

func (a *app) cmdUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	restaurantID := fs.String("restaurant", "", "restaurant id the menu belongs to")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: menuscan upload -restaurant <id> <image>")
	}
	if *restaurantID == "" {
		return fmt.Errorf("please select a restaurant (-restaurant)")
	}

	result, err := a.uploads.Upload(ctx, fs.Arg(0), *restaurantID, func(pct int, label string) {
		fmt.Printf("[%3d%%] %s\n", pct, label)
	})
	if err != nil {
		return err
	}

	fmt.Println(result.StatusMessage())
	fmt.Printf("id: %s\n", result.Extraction.ID)
	fmt.Printf("confidence: %.1f%% over %d lines\n", result.Extraction.AvgConfidence, result.Extraction.LineCount)
	fmt.Println()
	fmt.Println(review.RenderConfidenceText(&result.Extraction))
	return nil
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (a *app) cmdHistory(ctx context.Context) error {
	items, err := a.extractions.History(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No extractions yet.")
		return nil
	}
	for _, item := range items {
		marker := " "
		if item.Corrected {
			marker = "*"
		}
		fmt.Printf("%s %-36s %-10s %s\n", marker, item.ID, item.Timestamp, item.Filename)
	}
	fmt.Println("\n* corrected")
	return nil
}

func (a *app) findExtraction(ctx context.Context, id string) (*extraction.Extraction, error) {
	items, err := a.extractions.History(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("extraction %s not found", id)
}

func (a *app) cmdView(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: menuscan view <extraction-id>")
	}
	ext, err := a.findExtraction(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("file: %s\n", ext.Filename)
	if ext.S3Key != "" {
		fmt.Printf("image: %s\n", a.extractions.DownloadURL(ext.S3Key))
	}
	fmt.Println()
	fmt.Println(review.RenderConfidenceText(ext))
	return nil
}

func (a *app) cmdEdit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: menuscan edit <extraction-id>")
	}
	ext, err := a.findExtraction(ctx, args[0])
	if err != nil {
		return err
	}

	session := review.NewSession(a.extRepo, a.validator, a.menu)
	session.Open(*ext)

	fmt.Println("Current text:")
	fmt.Println(session.Text())
	fmt.Println("\nEnter corrected text, end with a single '.' line:")

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		fmt.Println("Nothing changed.")
		return nil
	}

	session.SetText(strings.Join(lines, "\n"))
	if err := session.SaveCorrection(ctx); err != nil {
		return err
	}
	fmt.Println("Saved.")
	return nil
}

func (a *app) cmdValidate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: menuscan validate <extraction-id>")
	}
	ext, err := a.findExtraction(ctx, args[0])
	if err != nil {
		return err
	}

	session := review.NewSession(a.extRepo, a.validator, a.menu)
	session.Open(*ext)
	report, err := session.RunValidation(ctx)
	if err != nil {
		return err
	}
	fmt.Println(review.RenderReportText(report))
	return nil
}

func (a *app) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: menuscan delete <extraction-id>")
	}
	if !confirm(fmt.Sprintf("Delete extraction %s?", args[0])) {
		return nil
	}
	if err := a.extractions.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

func (a *app) cmdMenu(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: menuscan menu list|add|edit|delete|image ...")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("menu list", flag.ExitOnError)
		extractionID := fs.String("extraction", "", "extraction id")
		fs.Parse(args[1:])
		items, err := a.menu.List(ctx, *extractionID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No menu items yet.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%-36s %s\n", item.ID, item.DishName)
			if item.Description != "" {
				fmt.Printf("  %s\n", item.Description)
			}
			for _, ing := range item.Ingredients {
				fmt.Printf("  - %s %s\n", ing.Quantity, ing.Name)
			}
			if item.ImageKey != "" {
				fmt.Printf("  image: %s\n", a.menu.ImageURL(item.ImageKey))
			}
		}
		return nil

	case "add":
		fs := flag.NewFlagSet("menu add", flag.ExitOnError)
		extractionID := fs.String("extraction", "", "extraction id")
		dish := fs.String("dish", "", "dish name")
		desc := fs.String("desc", "", "description")
		tts := fs.String("tts", "", "time to serve")
		ptb := fs.Float64("ptb", 0, "price to buyer")
		ingredients := fs.String("ingredients", "", "comma separated quantity:name pairs")
		fs.Parse(args[1:])

		form := menuitem.Form{
			DishName:    *dish,
			Description: *desc,
			TTS:         *tts,
			PTB:         *ptb,
			Ingredients: parseIngredients(*ingredients),
		}
		item, err := a.menu.Save(ctx, *extractionID, form)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", item.ID)
		if item.ImageKey != "" {
			fmt.Printf("image: %s\n", a.menu.ImageURL(item.ImageKey))
		}
		return nil

	case "edit":
		fs := flag.NewFlagSet("menu edit", flag.ExitOnError)
		id := fs.String("id", "", "menu item id")
		extractionID := fs.String("extraction", "", "extraction id")
		dish := fs.String("dish", "", "dish name")
		desc := fs.String("desc", "", "description")
		tts := fs.String("tts", "", "time to serve")
		ptb := fs.Float64("ptb", 0, "price to buyer")
		ingredients := fs.String("ingredients", "", "comma separated quantity:name pairs")
		fs.Parse(args[1:])
		if *id == "" {
			return fmt.Errorf("usage: menuscan menu edit -id <item-id> ...")
		}

		form := menuitem.Form{
			EditID:      *id,
			DishName:    *dish,
			Description: *desc,
			TTS:         *tts,
			PTB:         *ptb,
			Ingredients: parseIngredients(*ingredients),
		}
		if _, err := a.menu.Save(ctx, *extractionID, form); err != nil {
			return err
		}
		fmt.Println("Updated.")
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: menuscan menu delete <item-id>")
		}
		if !confirm(fmt.Sprintf("Delete menu item %s?", args[1])) {
			return nil
		}
		if err := a.menu.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil

	case "image":
		fs := flag.NewFlagSet("menu image", flag.ExitOnError)
		extractionID := fs.String("extraction", "", "extraction id")
		dish := fs.String("dish", "", "dish name")
		ingredients := fs.String("ingredients", "", "comma separated quantity:name pairs")
		fs.Parse(args[1:])

		form := menuitem.Form{DishName: *dish, Ingredients: parseIngredients(*ingredients)}
		key, err := a.menu.GenerateImage(ctx, *extractionID, form)
		if err != nil {
			return err
		}
		fmt.Printf("Generated: %s\n", a.menu.ImageURL(key))
		return nil

	default:
		return fmt.Errorf("unknown menu subcommand %q", args[0])
	}
}

// parseIngredients splits "100g:flour,2:eggs" into ingredient rows.
func parseIngredients(s string) []menuitem.Ingredient {
	if s == "" {
		return nil
	}
	var out []menuitem.Ingredient
	for _, part := range strings.Split(s, ",") {
		qty, name, found := strings.Cut(part, ":")
		if !found {
			name, qty = qty, ""
		}
		out = append(out, menuitem.Ingredient{Name: strings.TrimSpace(name), Quantity: strings.TrimSpace(qty)})
	}
	return out
}

// --------------------------------------------------
// Reference data + panels
// --------------------------------------------------

func (a *app) cmdRestaurants(ctx context.Context) error {
	for _, r := range a.restaurants.List(ctx) {
		fmt.Printf("%3d  %s\n", r.ID, r.Name)
	}
	return nil
}

func (a *app) cmdTodos(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		todos, err := a.todos.List(ctx)
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			fmt.Println("No todos.")
			return nil
		}
		for _, item := range todos {
			box := "[ ]"
			if item.Completed {
				box = "[x]"
			}
			fmt.Printf("%s %-36s %s\n", box, item.ID, item.Text)
		}
		return nil
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: menuscan todos add <text>")
		}
		id, err := a.todos.Add(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Added %s\n", id)
		return nil
	case "done":
		if len(args) != 2 {
			return fmt.Errorf("usage: menuscan todos done <id>")
		}
		completed, err := a.todos.Toggle(ctx, args[1])
		if err != nil {
			return err
		}
		if completed {
			fmt.Println("Marked done.")
		} else {
			fmt.Println("Reopened.")
		}
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: menuscan todos rm <id>")
		}
		if err := a.todos.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	default:
		return fmt.Errorf("unknown todos subcommand %q", args[0])
	}
}

func (a *app) cmdStats(ctx context.Context) error {
	count, err := a.stats.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Total visitors: %d\n\n", count)

	detailed, err := a.stats.Detailed(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("today %d   week %d   month %d\n\n", detailed.TodayVisitors, detailed.WeekVisitors, detailed.MonthVisitors)
	fmt.Println(stats.RenderChart("Browsers", detailed.Browsers))
	fmt.Println(stats.RenderChart("Operating Systems", detailed.OperatingSystems))
	fmt.Println(stats.RenderChart("Countries", detailed.Countries))
	fmt.Println(stats.RenderChart("Devices", detailed.Devices))

	if len(detailed.RecentVisitors) > 0 {
		fmt.Println("Recent visitors")
		for _, v := range detailed.RecentVisitors {
			fmt.Printf("  %s  %s, %s  %s/%s\n", v.Visit, v.City, v.Country, v.Browser, v.OS)
		}
	}
	return nil
}

func (a *app) cmdCosts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("costs", flag.ExitOnError)
	period := fs.String("period", "month", "billing period: month or year")
	refreshCDN := fs.Bool("refresh-cdn", false, "invalidate the image CDN cache")
	fs.Parse(args)

	if *refreshCDN {
		inv, err := a.costs.InvalidateCDN(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Invalidation %s: %s\n", inv.InvalidationID, inv.Status)
		return nil
	}

	report, err := a.costs.Load(ctx, *period)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s %s\n", report.Label, formatAmount(report.Total), report.Currency)
	for _, s := range report.BilledServices() {
		fmt.Printf("  %-40s %s\n", s.Service, formatAmount(s.Amount))
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
