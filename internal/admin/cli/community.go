package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/models"
)

func (a *App) ListTestimonials(ctx context.Context) error {
	items, err := a.testimonials.List(ctx)
	if err != nil {
		printlnFn("Listing failed:", err.Error())
		return err
	}

	for _, tm := range items {
		printlnFn(fmt.Sprintf("%-12s %s (%s) %s: %s",
			tm.ID, tm.Author, tm.Role, strings.Repeat("★", tm.Rating), tm.Quote))
	}
	return nil
}

func (a *App) AddTestimonial(ctx context.Context) error {
	author, err := getSimpleText(a.reader, "Author", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Author role", os.Stdout)
	if err != nil {
		return err
	}
	quote, err := GetMultiline(a.reader, "Quote", os.Stdout)
	if err != nil {
		return err
	}
	ratingText, err := GetOptionalText(a.reader, "Rating 1-5 [5]", "5", os.Stdout)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(ratingText)
	if err != nil || rating < 1 || rating > 5 {
		rating = 5
	}

	tm := &models.Testimonial{Author: author, Role: role, Quote: quote, Rating: rating}
	if err := a.testimonials.Create(ctx, tm); err != nil {
		printValidation(err)
		return err
	}
	printlnFn("Created testimonial", tm.ID)
	return nil
}

func (a *App) DeleteTestimonial(ctx context.Context, args []string) error {
	id := args[0]
	if err := a.testimonials.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted testimonial", id)
	return nil
}

func (a *App) ListSubscribers(ctx context.Context) error {
	items, err := a.subscribers.List(ctx)
	if err != nil {
		printlnFn("Listing failed:", err.Error())
		return err
	}

	active := 0
	for _, s := range items {
		if s.Status == models.SubscriberActive {
			active++
		}
		printlnFn(fmt.Sprintf("%-28s %-14s %s", s.ID, s.Status, s.Email))
	}
	printlnFn(fmt.Sprintf("%d subscribers, %d active", len(items), active))
	return nil
}

// AddSubscriber records a newsletter signup. Duplicate emails are rejected
// before any write.
func (a *App) AddSubscriber(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}

	existing, err := a.subscribers.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range existing {
		if strings.EqualFold(s.Email, email) {
			printlnFn("This email is already subscribed")
			return nil
		}
	}

	s := &models.Subscriber{Email: email, Status: models.SubscriberActive}
	if err := a.subscribers.Create(ctx, s); err != nil {
		printValidation(err)
		return err
	}
	printlnFn("Subscribed", email)
	return nil
}

// Unsubscribe flips a subscriber to unsubscribed. The record is kept so
// the address cannot be re-added by accident.
func (a *App) Unsubscribe(ctx context.Context, args []string) error {
	id := args[0]
	if _, err := a.subscribers.Update(ctx, id, map[string]any{
		"status": string(models.SubscriberUnsubscribed),
	}); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No subscriber with id", id)
		} else {
			printValidation(err)
		}
		return err
	}
	printlnFn("Unsubscribed", id)
	return nil
}
