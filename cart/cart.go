// Package cart models the shopping cart as a pure reducer: state plus action
// yields the next state, with persistence handled by a separate Store layer.
package cart

import (
	"errors"
	"fmt"
)

// Line is one cart entry: a product snapshot at the chosen color/size.
type Line struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Price         float64 `json:"price"`
	SelectedColor string  `json:"selected_color"`
	SelectedSize  string  `json:"selected_size"`
	Quantity      int     `json:"quantity"`
}

type State struct {
	Lines []Line `json:"lines"`
}

type ActionType string

const (
	ActionAdd         ActionType = "add"
	ActionRemove      ActionType = "remove"
	ActionSetQuantity ActionType = "set_quantity"
	ActionClear       ActionType = "clear"
)

type Action struct {
	Type ActionType `json:"type"`
	Line Line       `json:"line"`
}

// lineKey distinguishes the same product in different color/size variants.
func lineKey(l Line) string {
	return fmt.Sprintf("%d|%s|%s", l.ProductID, l.SelectedColor, l.SelectedSize)
}

// Reduce returns the state produced by applying action to state. The input
// state is never mutated.
func Reduce(state State, action Action) (State, error) {
	switch action.Type {
	case ActionAdd:
		if action.Line.Quantity <= 0 {
			return state, errors.New("add requires a positive quantity")
		}
		next := cloneLines(state.Lines)
		key := lineKey(action.Line)
		for i := range next {
			if lineKey(next[i]) == key {
				next[i].Quantity += action.Line.Quantity
				return State{Lines: next}, nil
			}
		}
		return State{Lines: append(next, action.Line)}, nil

	case ActionSetQuantity:
		key := lineKey(action.Line)
		next := make([]Line, 0, len(state.Lines))
		found := false
		for _, l := range state.Lines {
			if lineKey(l) == key {
				found = true
				if action.Line.Quantity > 0 {
					l.Quantity = action.Line.Quantity
					next = append(next, l)
				}
				continue
			}
			next = append(next, l)
		}
		if !found {
			return state, errors.New("line not in cart")
		}
		return State{Lines: next}, nil

	case ActionRemove:
		key := lineKey(action.Line)
		next := make([]Line, 0, len(state.Lines))
		for _, l := range state.Lines {
			if lineKey(l) != key {
				next = append(next, l)
			}
		}
		return State{Lines: next}, nil

	case ActionClear:
		return State{}, nil

	default:
		return state, fmt.Errorf("unknown cart action %q", action.Type)
	}
}

// Subtotal sums price*quantity over all lines.
func Subtotal(state State) float64 {
	var total float64
	for _, l := range state.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

func cloneLines(lines []Line) []Line {
	next := make([]Line, len(lines))
	copy(next, lines)
	return next
}
