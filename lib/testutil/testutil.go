package testutil

import (
	"context"
	"fmt"
	"testing"

	configlibsql "reviewtopics/lib/configuration/libsql"
	"reviewtopics/lib/reviewstore"
	"reviewtopics/lib/telemetry"
)

type StoreParams struct {
	Name string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type StoreResult struct {
	Store reviewstore.Store
}

func SetupStore(t testing.TB, params StoreParams) (StoreResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	db, err := configlibsql.Struct{File: params.DbPath}.OpenDB()
	if err != nil {
		t.Fatal(err)
	}
	store, err := reviewstore.NewStore(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}

	return StoreResult{Store: store}, func() {
		db.Close()
		cleanup()
	}
}
