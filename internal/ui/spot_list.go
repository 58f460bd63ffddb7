package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/fishit/fishit/internal/models"
)

// spotItem wraps a Spot for use in a list
type spotItem struct {
	spot models.Spot
}

// FilterValue implements list.Item
func (s spotItem) FilterValue() string {
	return s.spot.Name + " " + s.spot.Commune
}

// Title implements list.DefaultItem
func (s spotItem) Title() string {
	return s.spot.Name
}

// Description implements list.DefaultItem
func (s spotItem) Description() string {
	return fmt.Sprintf("%s - %s", s.spot.Commune, s.spot.Address)
}

// createSpotList creates a list.Model from department spots
func createSpotList(dept *models.DepartmentData, width, height int) list.Model {
	items := make([]list.Item, len(dept.Spots))
	for i, spot := range dept.Spots {
		items[i] = spotItem{spot: spot}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = fmt.Sprintf("Spots de pêche - %s", dept.Name)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
