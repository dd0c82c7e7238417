// cmd/web/seed.go
// This file contains the seed command and the sample catalog it loads.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aoideee/locallibrary/internal/data"
)

func newSeedCommand(v *viper.Viper, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog with sample authors, genres, books and copies",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadConfig(v)

			models, closeModels, err := openModels(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer closeModels()

			// Bound the whole seed run, not just each store call.
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			if err := seedCatalog(ctx, models); err != nil {
				return err
			}
			logger.Info("catalog seeded", "driver", settings.db.driver)
			return nil
		},
	}
}

func date(s string) *time.Time {
	t, err := time.Parse(data.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// seedCatalog inserts the sample data set. Genres that already exist are reused.
func seedCatalog(ctx context.Context, models data.Models) error {
	authors := []*data.Author{
		{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: date("1973-06-06")},
		{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: date("1932-11-08")},
		{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date("1920-01-02"), DateOfDeath: date("1992-04-06")},
		{FirstName: "Bob", FamilyName: "Billings"},
		{FirstName: "Jim", FamilyName: "Jones", DateOfBirth: date("1971-12-16")},
	}
	for _, a := range authors {
		if err := models.Authors.Insert(ctx, a); err != nil {
			return fmt.Errorf("seeding author %s: %w", a.Name(), err)
		}
	}

	genres := []*data.Genre{{Name: "Fantasy"}, {Name: "Science Fiction"}, {Name: "French Poetry"}}
	for i, g := range genres {
		err := models.Genres.Insert(ctx, g)
		if errors.Is(err, data.ErrDuplicateGenre) {
			genres[i], err = models.Genres.GetByName(ctx, g.Name)
		}
		if err != nil {
			return fmt.Errorf("seeding genre %s: %w", g.Name, err)
		}
	}
	fantasy, scifi := genres[0].ID, genres[1].ID

	books := []*data.Book{
		{
			Title:    "The Name of the Wind (The Kingkiller Chronicle, #1)",
			Summary:  "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.",
			ISBN:     "9781473211896",
			AuthorID: authors[0].ID,
			GenreIDs: []string{fantasy},
		},
		{
			Title:    "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
			Summary:  "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
			ISBN:     "9788401352836",
			AuthorID: authors[0].ID,
			GenreIDs: []string{fantasy},
		},
		{
			Title:    "The Slow Regard of Silent Things (Kingkiller Chronicle)",
			Summary:  "Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.",
			ISBN:     "9780756411336",
			AuthorID: authors[0].ID,
			GenreIDs: []string{fantasy},
		},
		{
			Title:    "Apes and Angels",
			Summary:  "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
			ISBN:     "9780765379528",
			AuthorID: authors[1].ID,
			GenreIDs: []string{scifi},
		},
		{
			Title:    "Death Wave",
			Summary:  "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.",
			ISBN:     "9780765379504",
			AuthorID: authors[1].ID,
			GenreIDs: []string{scifi},
		},
		{
			Title:    "Test Book 1",
			Summary:  "Summary of test book 1",
			ISBN:     "ISBN111111",
			AuthorID: authors[2].ID,
			GenreIDs: []string{fantasy, scifi},
		},
		{
			Title:    "Test Book 2",
			Summary:  "Summary of test book 2",
			ISBN:     "ISBN222222",
			AuthorID: authors[3].ID,
			GenreIDs: []string{},
		},
	}
	for _, b := range books {
		if err := models.Books.Insert(ctx, b); err != nil {
			return fmt.Errorf("seeding book %q: %w", b.Title, err)
		}
	}

	instances := []*data.BookInstance{
		{BookID: books[0].ID, Imprint: "London Gollancz, 2014.", Status: data.StatusAvailable, DueBack: date("2020-06-06")},
		{BookID: books[1].ID, Imprint: " Gollancz, 2011.", Status: data.StatusLoaned, DueBack: date("2020-06-06")},
		{BookID: books[2].ID, Imprint: " Gollancz, 2015.", Status: data.StatusMaintenance},
		{BookID: books[3].ID, Imprint: "New York Tom Doherty Associates, 2016.", Status: data.StatusAvailable},
		{BookID: books[3].ID, Imprint: "New York Tom Doherty Associates, 2016.", Status: data.StatusAvailable},
		{BookID: books[3].ID, Imprint: "New York Tom Doherty Associates, 2016.", Status: data.StatusAvailable},
		{BookID: books[4].ID, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: data.StatusAvailable},
		{BookID: books[4].ID, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: data.StatusMaintenance},
		{BookID: books[4].ID, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: data.StatusLoaned},
		{BookID: books[0].ID, Imprint: "Imprint XXX2", Status: data.StatusMaintenance},
		{BookID: books[1].ID, Imprint: "Imprint XXX3", Status: data.StatusReserved},
	}
	for _, bi := range instances {
		if err := models.BookInstances.Insert(ctx, bi); err != nil {
			return fmt.Errorf("seeding copy of %s: %w", bi.BookID, err)
		}
	}

	return nil
}
