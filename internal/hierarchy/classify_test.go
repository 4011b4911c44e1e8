package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	t.Run("monorepo layout", func(t *testing.T) {
		info := c.Classify("packages/web/src/auth/login/Form.tsx")
		assert.Equal(t, "web", info.Architecture)
		assert.Equal(t, "auth", info.Module)
		assert.Equal(t, "login", info.Component)
		assert.Equal(t, "component", info.Level)
	})

	t.Run("single package layout", func(t *testing.T) {
		info := c.Classify("src/billing/invoice.ts")
		assert.Empty(t, info.Architecture, "no architecture without a container dir")
		assert.Equal(t, "billing", info.Module)
		assert.Empty(t, info.Component)
		assert.Equal(t, "module", info.Level)
	})

	t.Run("deep nesting stops at component", func(t *testing.T) {
		info := c.Classify("src/auth/login/forms/fields/Input.tsx")
		assert.Equal(t, "auth", info.Module)
		assert.Equal(t, "login", info.Component)
	})

	t.Run("root level file", func(t *testing.T) {
		info := c.Classify("index.ts")
		assert.Empty(t, info.Architecture)
		assert.Empty(t, info.Module)
		assert.Equal(t, "file", info.Level)
	})

	t.Run("file directly under source root", func(t *testing.T) {
		info := c.Classify("src/main.ts")
		assert.Empty(t, info.Module)
		assert.Equal(t, "file", info.Level)
	})

	t.Run("no source root", func(t *testing.T) {
		info := c.Classify("app/dashboard/page.tsx")
		assert.Equal(t, "app", info.Module)
		assert.Equal(t, "dashboard", info.Component)
	})

	t.Run("architecture dir segment is not the architecture", func(t *testing.T) {
		info := c.Classify("apps/mobile/src/feed/Feed.tsx")
		assert.Equal(t, "mobile", info.Architecture)
		assert.Equal(t, "feed", info.Module)
	})
}

func TestClassifier_CustomPatterns(t *testing.T) {
	c := NewClassifierWithPatterns([]string{"workspaces"}, []string{"code"})

	info := c.Classify("workspaces/api/code/users/handler.ts")
	assert.Equal(t, "api", info.Architecture)
	assert.Equal(t, "users", info.Module)

	t.Run("empty patterns fall back to defaults", func(t *testing.T) {
		d := NewClassifierWithPatterns(nil, nil)
		info := d.Classify("packages/web/src/auth/login.ts")
		assert.Equal(t, "web", info.Architecture)
		assert.Equal(t, "auth", info.Module)
	})
}
