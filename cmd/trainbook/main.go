// Package main is the console entry point for the train-booking utility.
//
// The main package stays minimal — its job is to:
//  1. Read configuration (from env vars)
//  2. Create dependencies (logger, stores, services)
//  3. Run the command loop
//
// All actual logic lives in the internal packages; main only parses lines
// and prints results. The business rules never see a terminal.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sakif/train-booking/internal/auth"
	"github.com/sakif/train-booking/internal/model"
	"github.com/sakif/train-booking/internal/repository/jsonfile"
	"github.com/sakif/train-booking/internal/service"
)

func main() {
	// === 1. SET UP LOGGING ===
	// Logs go to stderr so they don't interleave with the prompt on stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// === 2. READ CONFIGURATION ===
	// Collection file locations come from the environment, with local
	// defaults. Example: TRAINS_PATH=/var/lib/trainbook/trains.json
	trainsPath := envOr("TRAINS_PATH", "data/trains.json")
	usersPath := envOr("USERS_PATH", "data/users.json")

	for _, p := range []string{trainsPath, usersPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			logger.Error("failed to create data directory",
				slog.String("dir", filepath.Dir(p)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 3. CREATE THE STORES ===
	// Init bootstraps an empty collection file on first run; after that a
	// missing or unreadable file is fatal (the services can't operate
	// without their backing collections).
	trainStore := jsonfile.New[model.Train](trainsPath)
	userStore := jsonfile.New[model.User](usersPath)
	for _, init := range []func() error{trainStore.Init, userStore.Init} {
		if err := init(); err != nil {
			logger.Error("failed to bootstrap collection file", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// === 4. WIRE THE SERVICES ===
	// main decides the concrete dependencies: file-backed stores, real
	// bcrypt cost. Tests wire the same services with mocks instead.
	catalog, err := service.NewCatalogService(trainStore, logger)
	if err != nil {
		logger.Error("failed to open train catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	booking, err := service.NewBookingService(userStore, catalog, auth.NewPasswordService(), logger)
	if err != nil {
		logger.Error("failed to open user collection", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 5. RUN THE COMMAND LOOP ===
	if err := run(booking, os.Stdin, os.Stdout); err != nil {
		logger.Error("command loop failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

const usage = `commands:
  signup <name> <password>
  login <name> <password>
  search <source> <destination>
  book <train-number> <source> <destination> <row> <col> <travel-date>
  cancel <ticket-id>
  bookings
  quit`

// run reads commands line by line until EOF or quit.
// It takes io streams (not os.Stdin directly) so the loop is testable.
func run(booking *service.BookingService, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "trainbook — type 'help' for commands")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch cmd := args[0]; cmd {
		case "help":
			fmt.Fprintln(out, usage)

		case "signup", "login":
			if len(args) != 3 {
				fmt.Fprintf(out, "usage: %s <name> <password>\n", cmd)
				continue
			}
			var user *model.User
			var err error
			if cmd == "signup" {
				user, err = booking.SignUp(args[1], args[2])
			} else {
				user, err = booking.Login(args[1], args[2])
			}
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintf(out, "welcome, %s (id %s)\n", user.Name, user.ID)

		case "search":
			if len(args) != 3 {
				fmt.Fprintln(out, "usage: search <source> <destination>")
				continue
			}
			trains := booking.SearchTrains(args[1], args[2])
			if len(trains) == 0 {
				fmt.Fprintln(out, "no trains found")
				continue
			}
			for _, t := range trains {
				printTrain(out, t)
			}

		case "book":
			if len(args) != 7 {
				fmt.Fprintln(out, "usage: book <train-number> <source> <destination> <row> <col> <travel-date>")
				continue
			}
			current := booking.CurrentUser()
			if current == nil {
				fmt.Fprintln(out, "sign up or log in first")
				continue
			}
			row, errRow := strconv.Atoi(args[4])
			col, errCol := strconv.Atoi(args[5])
			if errRow != nil || errCol != nil {
				fmt.Fprintln(out, "row and col must be integers")
				continue
			}
			train, err := booking.FindTrain(args[1])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			ticket, err := booking.BookTicket(current.ID, args[2], args[3], args[6], train, row, col)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintf(out, "booked seat (%d,%d) on train %s — ticket %s\n", row, col, train.Number, ticket.ID)

		case "cancel":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: cancel <ticket-id>")
				continue
			}
			if err := booking.CancelTicket(args[1]); err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, "ticket cancelled")

		case "bookings":
			tickets, err := booking.FetchBookings()
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			if len(tickets) == 0 {
				fmt.Fprintln(out, "no bookings")
				continue
			}
			for _, tk := range tickets {
				fmt.Fprintf(out, "%s  %s → %s on %s (train %s)\n",
					tk.ID, tk.Source, tk.Destination, tk.TravelDate, tk.Train.Number)
			}

		case "quit", "exit":
			return nil

		default:
			fmt.Fprintf(out, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return scanner.Err()
}

func printTrain(out io.Writer, t model.Train) {
	free := 0
	for _, row := range t.Seats {
		for _, cell := range row {
			if cell == model.SeatFree {
				free++
			}
		}
	}
	fmt.Fprintf(out, "train %s: %s (%d free seats)\n",
		t.Number, strings.Join(t.Stations, " → "), free)
}

// envOr returns the value of the environment variable, or fallback if unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
