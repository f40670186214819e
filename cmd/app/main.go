package main

import (
	"context"
	"fmt"
	"os"

	authservice "github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service"
	bookingservice "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	trackingservice "github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: app <auth-service|booking-service|tracking-service>")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "auth-service":
		err = authservice.Execute(ctx, mylog, cfg)
	case "booking-service":
		err = bookingservice.Execute(ctx, mylog, cfg)
	case "tracking-service":
		err = trackingservice.Execute(ctx, mylog, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown service: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		mylog.Error("service stopped with error", err)
		os.Exit(1)
	}
}
