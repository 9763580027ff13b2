package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mkerrigan/wildbound/internal/content"
)

func main() {
	contentDir := flag.String("content", "", "path to the content directory")
	flag.Parse()

	if *contentDir == "" {
		fmt.Fprintln(os.Stderr, "usage: validate-content -content <dir>")
		os.Exit(1)
	}

	start := time.Now()
	store, err := content.Load(*contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := store.VerifyReferences(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("content valid: %d species, %d abilities, %d statuses, %d items, %d quests, %d breeding recipes\n",
		store.Species.Len(), store.Abilities.Len(), store.Statuses.Len(),
		store.Items.Len(), store.Quests.Len(), len(store.Breeding.Recipes))
	fmt.Printf("validation complete in %s\n", time.Since(start).Round(time.Millisecond))
}
