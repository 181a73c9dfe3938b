// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package testinfra provides container helpers for integration tests.
//
// MySQLContainer starts a real MySQL server and creates the two marts the
// reports read, so the provider, executor and report queries can be checked
// against the production engine rather than DuckDB:
//
//	mysql, err := testinfra.NewMySQLContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, mysql)
//	_ = mysql.Seed(ctx, "INSERT INTO growth_funnel_mart VALUES (...)")
//
//	provider := database.NewProvider(database.ProviderOptions{
//	    Driver:      "mysql",
//	    Credentials: database.StaticCredentials(mysql.Credentials()),
//	})
//
// Tests are behind the integration build tag and skip when Docker is not
// available:
//
//	go test -tags integration ./internal/testinfra/...
package testinfra
