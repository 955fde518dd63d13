package main

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/database"
	"github.com/locallibrary/catalog/pkg/migrations"
	"github.com/locallibrary/catalog/pkg/seed"
	"github.com/robinjoseph08/golib/logger"
)

func main() {
	log := logger.New()
	ctx := log.WithContext(context.Background())

	defaults := seed.DefaultOptions()
	opts := struct {
		Authors          int   `short:"a" long:"authors" description:"Number of authors to create"`
		Genres           int   `short:"g" long:"genres" description:"Number of genres to create"`
		BooksPerAuthor   int   `short:"b" long:"books-per-author" description:"Books created for each author"`
		InstancesPerBook int   `short:"i" long:"instances-per-book" description:"Copies created for each book"`
		Users            int   `short:"u" long:"users" description:"Number of user accounts to create"`
		Seed             int64 `short:"s" long:"seed" description:"Random seed for reproducible data"`
	}{
		Authors:          defaults.Authors,
		Genres:           defaults.Genres,
		BooksPerAuthor:   defaults.BooksPerAuthor,
		InstancesPerBook: defaults.InstancesPerBook,
		Users:            defaults.Users,
	}

	if _, err := flags.Parse(&opts); err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	result, err := seed.New(db, seed.Options{
		Authors:          opts.Authors,
		Genres:           opts.Genres,
		BooksPerAuthor:   opts.BooksPerAuthor,
		InstancesPerBook: opts.InstancesPerBook,
		Users:            opts.Users,
		Seed:             opts.Seed,
	}).Run(ctx)
	if err != nil {
		log.Err(err).Fatal("seed error")
	}

	for _, user := range result.Users {
		fmt.Printf("Login: %s / %s\n", user.Email, user.Password)
	}
}
