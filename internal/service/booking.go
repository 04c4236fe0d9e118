package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/sakif/train-booking/internal/apperror"
	"github.com/sakif/train-booking/internal/auth"
	"github.com/sakif/train-booking/internal/model"
	"github.com/sakif/train-booking/internal/repository"
)

// BookingService owns the User collection and the single signed-in session,
// and composes with the CatalogService to apply seat reservations.
//
// SESSION MODEL:
// "Current user" is the whole session construct — one authenticated identity
// held in memory for the lifetime of the service instance. No tokens, no
// expiry, no lockout. The raw password is kept alongside it (never persisted)
// because FetchBookings re-verifies the session against the stored collection
// rather than trusting the cached record.
//
// CONSISTENCY CAVEAT:
// Booking mutates two collections — the train's seat map and the user's
// ticket list — persisted as two independent files with no transaction
// spanning them. If the train save succeeds and the user save fails, the seat
// stays marked booked with no ticket pointing at it. The failure is reported,
// not masked, and the store's atomic rename keeps each individual file
// intact; repairing the cross-file gap is an operator job.
type BookingService struct {
	store     repository.Collection[model.User]
	users     []model.User
	catalog   *CatalogService
	passwords *auth.PasswordService
	logger    *slog.Logger

	// current is a detached copy of the signed-in user's record; updateUser
	// writes it back into the collection by ID when it changes.
	current         *model.User
	sessionPassword string
}

// NewBookingService loads the user collection and returns a service with no
// signed-in user. Like the catalog, a load failure is fatal to construction.
func NewBookingService(
	store repository.Collection[model.User],
	catalog *CatalogService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) (*BookingService, error) {
	users, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading user collection: %w", err)
	}
	return &BookingService{
		store:     store,
		users:     users,
		catalog:   catalog,
		passwords: passwords,
		logger:    logger,
	}, nil
}

// CurrentUser returns a copy of the signed-in user, or nil before
// login/sign-up.
func (s *BookingService) CurrentUser() *model.User {
	if s.current == nil {
		return nil
	}
	cp := s.current.Clone()
	return &cp
}

// SignUp registers a new user and signs them in.
//
// The name is not checked for uniqueness — login resolves duplicates by
// "first match whose password verifies". The raw password is hashed here and
// only the hash reaches the record.
//
// If persisting fails, the in-memory append is NOT rolled back: memory and
// disk diverge until the next successful save. Documented, not masked.
func (s *BookingService) SignUp(name, rawPassword string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "user name is required")
	}
	if rawPassword == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(rawPassword)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:            xid.New().String(),
		Name:          name,
		PasswordHash:  hash,
		TicketsBooked: []model.Ticket{},
	}
	s.users = append(s.users, user)

	if err := s.persist(); err != nil {
		return nil, err
	}

	cp := user.Clone()
	s.current = &cp
	s.sessionPassword = rawPassword

	s.logger.Info("user signed up",
		slog.String("userID", user.ID),
		slog.String("name", user.Name),
	)

	out := user.Clone()
	return &out, nil
}

// Login authenticates against the stored collection and starts a session.
//
// The scan takes the first user whose name matches AND whose stored hash
// verifies against the raw password. A name match with a wrong password
// keeps scanning — two users may share a name. No match → apperror.ErrAuth.
func (s *BookingService) Login(name, rawPassword string) (*model.User, error) {
	for i := range s.users {
		if s.users[i].Name != name {
			continue
		}
		ok, err := s.passwords.Verify(rawPassword, s.users[i].PasswordHash)
		if err != nil {
			// Malformed stored hash — surface it, don't fold into "wrong password".
			return nil, err
		}
		if !ok {
			continue
		}

		cp := s.users[i].Clone()
		s.current = &cp
		s.sessionPassword = rawPassword

		s.logger.Info("user logged in",
			slog.String("userID", cp.ID),
			slog.String("name", cp.Name),
		)
		out := cp.Clone()
		return &out, nil
	}
	return nil, apperror.AuthFailed("invalid name or password")
}

// SearchTrains delegates to the catalog unchanged.
func (s *BookingService) SearchTrains(source, destination string) []model.Train {
	return s.catalog.Search(source, destination)
}

// FindTrain delegates to the catalog unchanged.
func (s *BookingService) FindTrain(number string) (*model.Train, error) {
	return s.catalog.FindByNumber(number)
}

// BookTicket reserves seat (row, col) on train for the signed-in user.
//
// Order of operations:
//  1. bounds-check the seat — out of range fails with no mutation anywhere
//  2. check the cell is free — an already-booked seat fails the same way
//  3. flip the cell to booked and persist the train via the catalog
//  4. append a fresh ticket (with a train snapshot) to the user and persist
//     the user collection
//
// Steps 3 and 4 hit two different files; see the consistency caveat on
// BookingService for what a failure between them means.
func (s *BookingService) BookTicket(userID, source, destination, travelDate string, train *model.Train, row, col int) (*model.Ticket, error) {
	if s.current == nil {
		return nil, apperror.AuthFailed("no user is signed in")
	}
	if train == nil {
		return nil, apperror.ValidationFailed("train", "train is required")
	}
	if !train.SeatInBounds(row, col) {
		return nil, apperror.ValidationFailed("seat",
			fmt.Sprintf("seat (%d,%d) is out of range for train %s", row, col, train.Number))
	}
	if train.SeatTaken(row, col) {
		return nil, apperror.ValidationFailed("seat",
			fmt.Sprintf("seat (%d,%d) on train %s is already booked", row, col, train.Number))
	}

	train.Seats[row][col] = model.SeatBooked
	if err := s.catalog.AddOrUpdate(*train); err != nil {
		return nil, err
	}

	ticket := model.Ticket{
		ID:          uuid.NewString(),
		UserID:      userID,
		Source:      source,
		Destination: destination,
		TravelDate:  travelDate,
		Train:       train.Clone(),
	}
	s.current.TicketsBooked = append(s.current.TicketsBooked, ticket)

	if err := s.updateUser(); err != nil {
		// The seat is already persisted as booked; the ticket is not.
		return nil, err
	}

	s.logger.Info("ticket booked",
		slog.String("ticketID", ticket.ID),
		slog.String("userID", userID),
		slog.String("train", train.Number),
		slog.Int("row", row),
		slog.Int("col", col),
	)

	cp := ticket.Clone()
	return &cp, nil
}

// CancelTicket removes the ticket with the given ID from the signed-in
// user's list and persists the user collection. An unknown ID fails with
// apperror.ErrNotFound.
//
// The seat on the train record is NOT released — cancellation only forgets
// the ticket. Booking and cancellation are deliberately asymmetric here; see
// DESIGN.md for the reasoning.
func (s *BookingService) CancelTicket(ticketID string) error {
	if s.current == nil {
		return apperror.AuthFailed("no user is signed in")
	}

	for i := range s.current.TicketsBooked {
		if s.current.TicketsBooked[i].ID != ticketID {
			continue
		}
		s.current.TicketsBooked = append(
			s.current.TicketsBooked[:i],
			s.current.TicketsBooked[i+1:]...,
		)
		if err := s.updateUser(); err != nil {
			return err
		}
		s.logger.Info("ticket cancelled",
			slog.String("ticketID", ticketID),
			slog.String("userID", s.current.ID),
		)
		return nil
	}
	return apperror.NotFound("ticket", ticketID)
}

// FetchBookings returns the signed-in user's tickets, in booking order.
//
// The session is re-resolved against the stored collection (name match plus
// password verification) rather than read from the cached record — if the
// stored user changed underneath the session and the credentials no longer
// match anyone, this reports apperror.ErrAuth instead of stale data.
func (s *BookingService) FetchBookings() ([]model.Ticket, error) {
	if s.current == nil {
		return nil, apperror.AuthFailed("no user is signed in")
	}

	for i := range s.users {
		if s.users[i].Name != s.current.Name {
			continue
		}
		ok, err := s.passwords.Verify(s.sessionPassword, s.users[i].PasswordHash)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		tickets := make([]model.Ticket, len(s.users[i].TicketsBooked))
		for j := range s.users[i].TicketsBooked {
			tickets[j] = s.users[i].TicketsBooked[j].Clone()
		}
		return tickets, nil
	}
	return nil, apperror.AuthFailed("session no longer matches a stored user")
}

// updateUser writes the detached current-user copy back into the collection
// (matching by ID, case-insensitively) and persists.
func (s *BookingService) updateUser() error {
	for i := range s.users {
		if strings.EqualFold(s.users[i].ID, s.current.ID) {
			s.users[i] = s.current.Clone()
			return s.persist()
		}
	}
	return apperror.NotFound("user", s.current.ID)
}

// persist rewrites the whole stored user collection from the in-memory one.
func (s *BookingService) persist() error {
	if err := s.store.Save(s.users); err != nil {
		s.logger.Error("failed to persist user collection",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persisting user collection: %w", err)
	}
	return nil
}
