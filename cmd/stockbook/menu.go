package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/shopspring/decimal"

	"StockBook/internal/inventory"
)

// Menu drives the interactive session. All parsing and input validation
// happens here; the catalog only ever sees well-typed values.
type Menu struct {
	Catalog *inventory.Catalog
	Out     io.Writer
}

func (m *Menu) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(m.Out, "StockBook inventory")

	for {
		fmt.Fprint(m.Out, `
1) Add record
2) Remove record
3) Update record
4) Search by name
5) List all
6) Quit
`)
		choice, err := m.prompt(rl, "Option: ")
		if err != nil {
			return quitOr(err)
		}

		switch choice {
		case "1":
			err = m.addRecord(ctx, rl)
		case "2":
			err = m.removeRecord(ctx, rl)
		case "3":
			err = m.updateRecord(ctx, rl)
		case "4":
			err = m.searchRecords(rl)
		case "5":
			err = m.listRecords()
		case "6":
			return nil
		default:
			fmt.Fprintln(m.Out, "Pick an option between 1 and 6.")
		}
		if err != nil {
			return quitOr(err)
		}
	}
}

// quitOr maps end-of-input to a normal quit.
func quitOr(err error) error {
	if err == io.EOF || err == readline.ErrInterrupt {
		return nil
	}
	return err
}

func (m *Menu) addRecord(ctx context.Context, rl *readline.Instance) error {
	id, err := m.promptInt(rl, "ID: ")
	if err != nil {
		return err
	}
	name, err := m.promptNonEmpty(rl, "Name: ")
	if err != nil {
		return err
	}
	quantity, err := m.promptInt(rl, "Quantity: ")
	if err != nil {
		return err
	}
	price, err := m.promptDecimal(rl, "Price: ")
	if err != nil {
		return err
	}

	if err := m.Catalog.Add(ctx, inventory.NewRecord(id, name, quantity, price)); err != nil {
		m.reportFailure(err, fmt.Sprintf("A record with ID %d already exists.", id))
		return nil
	}
	fmt.Fprintf(m.Out, "Added %q with ID %d.\n", name, id)
	return nil
}

func (m *Menu) removeRecord(ctx context.Context, rl *readline.Instance) error {
	id, err := m.promptInt(rl, "ID: ")
	if err != nil {
		return err
	}

	if err := m.Catalog.RemoveByID(ctx, id); err != nil {
		m.reportFailure(err, fmt.Sprintf("No record with ID %d.", id))
		return nil
	}
	fmt.Fprintf(m.Out, "Removed record %d.\n", id)
	return nil
}

func (m *Menu) updateRecord(ctx context.Context, rl *readline.Instance) error {
	id, err := m.promptInt(rl, "ID: ")
	if err != nil {
		return err
	}
	quantity, err := m.promptOptionalInt(rl, "New quantity (blank to keep): ")
	if err != nil {
		return err
	}
	price, err := m.promptOptionalDecimal(rl, "New price (blank to keep): ")
	if err != nil {
		return err
	}

	if quantity == nil && price == nil {
		fmt.Fprintln(m.Out, "Nothing to change.")
		return nil
	}

	if err := m.Catalog.Update(ctx, id, quantity, price); err != nil {
		m.reportFailure(err, fmt.Sprintf("No record with ID %d.", id))
		return nil
	}
	fmt.Fprintf(m.Out, "Updated record %d.\n", id)
	return nil
}

func (m *Menu) searchRecords(rl *readline.Instance) error {
	needle, err := m.prompt(rl, "Name contains: ")
	if err != nil {
		return err
	}

	records, findErr := m.Catalog.FindByNameContains(needle)
	if findErr != nil {
		m.reportFailure(findErr, "")
		return nil
	}
	if len(records) == 0 {
		if m.Catalog.Len() == 0 {
			fmt.Fprintln(m.Out, "The catalog is empty.")
		} else {
			fmt.Fprintf(m.Out, "No records match %q.\n", needle)
		}
		return nil
	}
	for _, r := range records {
		fmt.Fprintln(m.Out, r.String())
	}
	return nil
}

func (m *Menu) listRecords() error {
	records, err := m.Catalog.List()
	if err != nil {
		m.reportFailure(err, "")
		return nil
	}
	if len(records) == 0 {
		fmt.Fprintln(m.Out, "The catalog is empty.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintln(m.Out, r.String())
	}
	return nil
}

// reportFailure prints the friendly message for the expected outcomes and
// the raw error for storage trouble.
func (m *Menu) reportFailure(err error, friendly string) {
	switch {
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, inventory.ErrDuplicateID):
		fmt.Fprintln(m.Out, friendly)
	case errors.Is(err, inventory.ErrCatalogClosed):
		fmt.Fprintln(m.Out, "The catalog is closed.")
	default:
		fmt.Fprintf(m.Out, "Storage error: %v\n", err)
	}
}

func (m *Menu) prompt(rl *readline.Instance, q string) (string, error) {
	rl.SetPrompt(q)
	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) promptNonEmpty(rl *readline.Instance, q string) (string, error) {
	for {
		s, err := m.prompt(rl, q)
		if err != nil {
			return "", err
		}
		if s == "" {
			fmt.Fprintln(m.Out, "A value is required.")
			continue
		}
		return s, nil
	}
}

func (m *Menu) promptInt(rl *readline.Instance, q string) (int64, error) {
	for {
		s, err := m.prompt(rl, q)
		if err != nil {
			return 0, err
		}
		v, convErr := strconv.ParseInt(s, 10, 64)
		if convErr != nil || v < 0 {
			fmt.Fprintln(m.Out, "Enter a non-negative whole number.")
			continue
		}
		return v, nil
	}
}

func (m *Menu) promptDecimal(rl *readline.Instance, q string) (decimal.Decimal, error) {
	for {
		s, err := m.prompt(rl, q)
		if err != nil {
			return decimal.Zero, err
		}
		v, convErr := decimal.NewFromString(s)
		if convErr != nil || v.IsNegative() {
			fmt.Fprintln(m.Out, "Enter a non-negative amount, like 12.50.")
			continue
		}
		return v, nil
	}
}

func (m *Menu) promptOptionalInt(rl *readline.Instance, q string) (*int64, error) {
	for {
		s, err := m.prompt(rl, q)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		v, convErr := strconv.ParseInt(s, 10, 64)
		if convErr != nil || v < 0 {
			fmt.Fprintln(m.Out, "Enter a non-negative whole number, or leave blank.")
			continue
		}
		return &v, nil
	}
}

func (m *Menu) promptOptionalDecimal(rl *readline.Instance, q string) (*decimal.Decimal, error) {
	for {
		s, err := m.prompt(rl, q)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		v, convErr := decimal.NewFromString(s)
		if convErr != nil || v.IsNegative() {
			fmt.Fprintln(m.Out, "Enter a non-negative amount, or leave blank.")
			continue
		}
		return &v, nil
	}
}
