package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"focus_forge/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrCalendarNotConnected = errors.New("calendar not connected")

// GoogleCalendar pushes scheduled items to the user's primary calendar.
// Tokens are stored per user; a user without one is simply not connected.
type GoogleCalendar struct {
	config *oauth2.Config
	tokens *CalendarTokenStorage
}

func NewGoogleCalendar(credentialsFile, redirectURL string, tokens *CalendarTokenStorage) (*GoogleCalendar, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", credentialsFile, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}

	return &GoogleCalendar{config: config, tokens: tokens}, nil
}

// AuthURL returns the consent link; state comes back on the callback.
func (gc *GoogleCalendar) AuthURL(state string) string {
	return gc.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (gc *GoogleCalendar) Exchange(ctx context.Context, userID, code string) error {
	tok, err := gc.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return gc.tokens.SaveToken(ctx, userID, tok)
}

func (gc *GoogleCalendar) service(ctx context.Context, userID string) (*calendar.Service, error) {
	tok, err := gc.tokens.GetToken(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrCalendarNotConnected
	}
	if err != nil {
		return nil, err
	}

	client := gc.config.Client(ctx, tok)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return service, nil
}

// CreateEvent returns the created event's ID.
func (gc *GoogleCalendar) CreateEvent(ctx context.Context, userID string, event models.CalendarEvent) (string, error) {
	service, err := gc.service(ctx, userID)
	if err != nil {
		return "", err
	}

	googleEvent := &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
	}

	if event.AllDay {
		googleEvent.Start = &calendar.EventDateTime{Date: event.Start.Format(dateLayout)}
		googleEvent.End = &calendar.EventDateTime{Date: event.Start.AddDate(0, 0, 1).Format(dateLayout)}
	} else {
		duration := event.Duration
		if duration <= 0 {
			// Default: 30 minutes
			duration = 30 * time.Minute
		}
		googleEvent.Start = &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: event.Start.Location().String(),
		}
		googleEvent.End = &calendar.EventDateTime{
			DateTime: event.Start.Add(duration).Format(time.RFC3339),
			TimeZone: event.Start.Location().String(),
		}
	}

	created, err := service.Events.Insert("primary", googleEvent).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return created.Id, nil
}
