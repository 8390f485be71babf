package model

import (
	"fmt"
	"log"

	"github.com/limaJavier/meetscheduling/pkg/sat"
)

type matrixCell struct {
	event, slot int
}

// StartMatrix holds one decision variable per (event, slot) meaning "the event starts at the slot"
type StartMatrix struct {
	slots  int
	rows   map[int][]sat.Literal      // Event id -> start variables ordered by slot
	cells  map[sat.Literal]matrixCell // Reverse index used when decoding
	events []int                      // Event ids in allocation order
}

// NewStartMatrix allocates |Events| x Slots fresh variables through the adapter
func NewStartMatrix(meet Meet, adapter SolverAdapter) (*StartMatrix, error) {
	if meet.Slots <= 0 {
		return nil, newConfigurationError("number of slots must be positive: %d", meet.Slots)
	}
	for _, event := range meet.Events {
		if event.Duration > meet.Slots {
			return nil, newConfigurationError("event %d (%v) lasts %d slots but the horizon only has %d", event.ID, event.Name, event.Duration, meet.Slots)
		}
	}

	matrix := &StartMatrix{
		slots:  meet.Slots,
		rows:   make(map[int][]sat.Literal, len(meet.Events)),
		cells:  make(map[sat.Literal]matrixCell, len(meet.Events)*meet.Slots),
		events: make([]int, 0, len(meet.Events)),
	}
	for _, event := range meet.Events {
		row := make([]sat.Literal, meet.Slots)
		for t := range meet.Slots {
			row[t] = adapter.NewBoolVar(fmt.Sprintf("event_%d_starts_at_%d", event.ID, t))
			matrix.cells[row[t]] = matrixCell{event: event.ID, slot: t}
		}
		matrix.rows[event.ID] = row
		matrix.events = append(matrix.events, event.ID)
	}

	return matrix, nil
}

func (matrix *StartMatrix) Var(event, slot int) sat.Literal {
	row := matrix.Row(event)
	if slot < 0 || slot >= len(row) {
		log.Panicf("slot %d is outside the horizon [0, %d)", slot, matrix.slots)
	}
	return row[slot]
}

func (matrix *StartMatrix) Row(event int) []sat.Literal {
	row, ok := matrix.rows[event]
	if !ok {
		log.Panicf("event %d has no start variables", event)
	}
	return row
}

// Window returns the start variables of the event over [from, from+length-1], clipped to the horizon
func (matrix *StartMatrix) Window(event, from, length int) []sat.Literal {
	row := matrix.Row(event)
	to := min(from+length, len(row))
	from = max(from, 0)
	if from >= to {
		return []sat.Literal{}
	}
	return row[from:to]
}

// Lookup returns the (event, slot) behind a start variable. Auxiliary variables are not found
func (matrix *StartMatrix) Lookup(literal sat.Literal) (event, slot int, ok bool) {
	cell, ok := matrix.cells[sat.Literal(literal.Var())]
	return cell.event, cell.slot, ok
}

// Literals returns every start variable, event by event in allocation order
func (matrix *StartMatrix) Literals() []sat.Literal {
	literals := make([]sat.Literal, 0, len(matrix.cells))
	for _, event := range matrix.events {
		literals = append(literals, matrix.rows[event]...)
	}
	return literals
}

func (matrix *StartMatrix) Slots() int {
	return matrix.slots
}
