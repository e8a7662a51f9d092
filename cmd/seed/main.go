// Command main runs the database seeder for Clipstream.
package main

import (
	"flag"
	"log"

	"clipstream/internal/config"
	"clipstream/internal/database"
	"clipstream/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.NumUsers, "users", opts.NumUsers, "Number of users to create")
	flag.IntVar(&opts.VideosPerUser, "videos", opts.VideosPerUser, "Videos per user")
	flag.IntVar(&opts.TweetsPerUser, "tweets", opts.TweetsPerUser, "Tweets per user")
	flag.IntVar(&opts.CommentsPer, "comments", opts.CommentsPer, "Comments per video")
	flag.IntVar(&opts.SubsPerUser, "subs", opts.SubsPerUser, "Subscriptions per user")
	flag.Int64Var(&opts.RandSeed, "seed", 0, "Random seed (0 = time-based)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, opts)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
