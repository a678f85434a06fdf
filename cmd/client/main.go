package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bigkboy4lyf/swiftship-express/internal/client"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	serverURL := getEnv("SWIFTSHIP_URL", "http://localhost:5000")
	statePath := getEnv("SWIFTSHIP_STATE", defaultStatePath())

	remote := client.NewHTTPRemote(serverURL, logger)
	state := client.NewStateStore(statePath)
	cl := client.New(remote, state, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "quote":
		runQuote(ctx, cl, os.Args[2:])
	case "track":
		runTrack(ctx, cl, os.Args[2:])
	case "book":
		runBook(ctx, cl)
	default:
		usage()
		os.Exit(2)
	}
}

func runQuote(ctx context.Context, cl *client.Client, args []string) {
	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	name := fs.String("name", "", "sender name")
	email := fs.String("email", "", "sender email")
	origin := fs.String("from", "", "origin country code")
	destination := fs.String("to", "", "destination country code")
	service := fs.String("service", "standard", "service type")
	weight := fs.Float64("weight", 0, "package weight in kg")
	dimensions := fs.String("dimensions", "", "package dimensions")
	packageType := fs.String("package", "box", "package type")
	insurance := fs.Float64("insurance", 0, "declared insurance value")
	fs.Parse(args)

	view, err := cl.SubmitQuote(ctx, client.QuoteForm{
		SenderName:         *name,
		SenderEmail:        *email,
		OriginCountry:      *origin,
		DestinationCountry: *destination,
		ServiceType:        *service,
		Weight:             *weight,
		Dimensions:         *dimensions,
		PackageType:        *packageType,
		InsuranceValue:     *insurance,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Service:        %s\n", view.ServiceName)
	fmt.Printf("Route:          %s\n", view.Route)
	fmt.Printf("Delivery:       %s\n", view.DeliveryEstimate)
	fmt.Printf("Base price:     $%.2f\n", view.BasePrice)
	fmt.Printf("Insurance:      $%.2f\n", view.InsuranceCost)
	fmt.Printf("Fuel surcharge: $%.2f\n", view.Surcharge)
	fmt.Printf("Total:          $%.2f\n", view.TotalPrice)
	if view.QuoteNumber != "" {
		fmt.Printf("Quote number:   %s\n", view.QuoteNumber)
	}
	if view.Source == client.SourceLocal {
		fmt.Println("(computed locally; the quote service was unavailable)")
	}
}

func runTrack(ctx context.Context, cl *client.Client, args []string) {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: swiftship track <tracking-number>")
		os.Exit(2)
	}

	view := cl.Track(ctx, fs.Arg(0))

	fmt.Printf("Tracking:  %s\n", view.TrackingNumber)
	fmt.Printf("Status:    %s\n", view.Status)
	fmt.Printf("Update:    %s\n", view.LatestUpdate)
	fmt.Printf("Delivery:  %s\n", view.DeliveryEstimate)
}

func runBook(ctx context.Context, cl *client.Client) {
	view := cl.Book(ctx)
	if view.TrackingNumber != "" {
		fmt.Printf("Tracking number: %s\n", view.TrackingNumber)
	}
	fmt.Println(view.Message)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: swiftship <command> [flags]

commands:
  quote  -from US -to UK -service express -weight 2.5 [-insurance 500] -name NAME -email EMAIL
  track  <tracking-number>
  book`)
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swiftship-state.json"
	}
	return filepath.Join(home, ".swiftship", "state.json")
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
