package mapper_test

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"

	"field-mapper/mapper"
	"field-mapper/options"
	"field-mapper/store"
	"field-mapper/warehouse"
)

func ExampleMapWith() {
	m := mapper.New()

	email := "ada@example.com"
	user := store.User{
		ID:         uuid.MustParse("6f1c2a4e-8d3b-4f5a-9c7e-1b2d3e4f5a6b"),
		Name:       "Ada",
		Email:      &email,
		Role:       store.RoleAdmin,
		Credit:     10,
		LoginCount: 3,
	}

	client, err := mapper.MapWith[warehouse.Client](m, user)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(client.ID, client.Name, *client.Email)
	fmt.Printf("role=%q credit=%v logins=%d\n", client.Role, client.Credit, client.LoginCount)

	for _, w := range m.Diagnostics().Warnings {
		fmt.Printf("%s: %s\n", w.FieldPath, w.Code)
	}

	// Output:
	// 6f1c2a4e-8d3b-4f5a-9c7e-1b2d3e4f5a6b Ada ada@example.com
	// role="" credit=<nil> logins=0
	// Active: nullable_mismatch
	// Credit: nullable_mismatch
	// LoginCount: incompatible_types
	// Role: incompatible_types
}

func ExampleMapper_CopyIntoIfNotNull() {
	m := mapper.New()

	gauge := warehouse.Gauge{Value: 7}
	if err := m.CopyIntoIfNotNull(store.Reading{Valid: true}, &gauge, options.IgnoreTypeConflicts); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(gauge.Value, *gauge.Valid)

	five := 5
	if err := m.CopyIntoIfNotNull(store.Reading{Value: &five}, &gauge, options.IgnoreTypeConflicts); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(gauge.Value, *gauge.Valid)

	// Output:
	// 7 true
	// 5 false
}

func ExampleMapManyWith() {
	m := mapper.New()

	note := "leave at the door"
	orders := []store.Order{
		{ID: 1, Status: store.StatusPaid, TotalCents: 1250, Note: &note},
		{ID: 2, Status: store.StatusPending, TotalCents: 300},
		{ID: 3, Status: store.StatusShipped, TotalCents: 9900},
	}

	shipments, err := mapper.MapManyWith[warehouse.Order](m, slices.Values(orders), options.CoerceNullable)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, s := range shipments {
		fmt.Printf("%d %d %q %q\n", s.ID, s.TotalCents, s.Status, s.Note)
	}

	// Output:
	// 1 1250 "" "leave at the door"
	// 2 300 "" ""
	// 3 9900 "" ""
}

func ExampleMapper_Explain() {
	m := mapper.New()

	plan, err := m.Explain(reflect.TypeFor[store.User](), reflect.TypeFor[warehouse.Client](), options.CoerceNullable)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(plan.TypePair())

	for _, f := range plan.Fields {
		fmt.Printf("  %-10s %s\n", f.Name, f.Decision)
	}

	for _, u := range plan.Unmapped {
		fmt.Printf("  %-10s skipped (%s)\n", u.Name, u.Code)
	}

	// Output:
	// store.User -> warehouse.Client
	//   Active     nullable_coerce:unwrap
	//   CreatedAt  direct_copy
	//   Credit     nullable_coerce:wrap
	//   Email      direct_copy
	//   ID         direct_copy
	//   Name       direct_copy
	//   UpdatedAt  direct_copy
	//   CardNumber skipped (missing)
	//   LoginCount skipped (incompatible_types)
	//   PasswordHash skipped (ignored)
	//   Revision   skipped (missing)
	//   Role       skipped (incompatible_types)
}
