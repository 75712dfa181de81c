package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	devenv "reviewtopics/dev/env"
	configlibsql "reviewtopics/lib/configuration/libsql"
	"reviewtopics/lib/reviewstore"
)

func createStore(filename string) error {
	dbpath := filepath.Join("<dev_state>", filename)
	resolved, err := devenv.ResolvePath(dbpath)
	if err != nil {
		return err
	}

	_, err = os.Stat(resolved)
	if err == nil {
		fmt.Println("review store already created at", resolved)
		return nil
	}

	fmt.Println("creating review store at", resolved)
	db, err := configlibsql.Struct{File: dbpath}.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = reviewstore.NewStore(context.Background(), db)
	return err
}

func printConfigLocations() {
	fmt.Println()
	fmt.Println("configuration is read from the working directory:")
	fmt.Println("  config.json5        see cmd/reviewtopics/config.example.json5")
	fmt.Println("  config.local.json5  uncommitted overrides, merged over config.json5")
	fmt.Println("  telemetry.json5     otlp exporters, searched for upwards")
	fmt.Println()
	fmt.Println(`to persist the review store, set analyze.store.file to "<dev_state>/reviews.db"`)
}
