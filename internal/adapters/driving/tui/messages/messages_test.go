package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewDashboard, "dashboard"},
		{ViewRules, "rules"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range []ViewType{ViewMenu, ViewDashboard, ViewRules, ViewSettings, ViewHelp} {
		name := v.String()
		assert.False(t, seen[name], "duplicate view name %q", name)
		seen[name] = true
	}
}
