package adapter

import (
	"testing"

	m "sift.dev/pkg/sift/internal/model"
)

func skipListTree() (*m.Suite, *m.Test, *m.Test) {
	root := m.NewRootSuite("chrome")

	suite := &m.Suite{Title: "search", Parent: root}
	root.Children = append(root.Children, suite)

	slow := &m.Test{Title: "indexes a large catalog", Suite: suite}
	fast := &m.Test{Title: "finds one product", Suite: suite}
	suite.Children = append(suite.Children, slow, fast)

	return root, slow, fast
}

func TestSkipList_Apply(t *testing.T) {
	list, err := NewSkipList([]SkipRule{
		{Browsers: []string{"ie8"}, Title: "large catalog", Reason: "too slow"},
	})
	if err != nil {
		t.Fatalf("NewSkipList() error = %v", err)
	}

	root, slow, fast := skipListTree()
	list.Apply(root, "ie8")

	if !slow.Pending || slow.SilentSkip || slow.SkipReason != "too slow" {
		t.Errorf("matching test: pending=%v silent=%v reason=%q", slow.Pending, slow.SilentSkip, slow.SkipReason)
	}

	if fast.Pending {
		t.Error("non-matching test was skipped")
	}
}

func TestSkipList_OtherBrowserUntouched(t *testing.T) {
	list, err := NewSkipList([]SkipRule{
		{Browsers: []string{"ie8"}, Title: ".*", Reason: "everything"},
	})
	if err != nil {
		t.Fatalf("NewSkipList() error = %v", err)
	}

	root, slow, fast := skipListTree()
	list.Apply(root, "chrome")

	if slow.Pending || fast.Pending {
		t.Error("rule for ie8 applied to chrome")
	}
}

func TestSkipList_EmptyBrowserListMatchesAll(t *testing.T) {
	list, err := NewSkipList([]SkipRule{
		{Title: "finds one", Reason: "quarantined"},
	})
	if err != nil {
		t.Fatalf("NewSkipList() error = %v", err)
	}

	root, _, fast := skipListTree()
	list.Apply(root, "firefox")

	if !fast.Pending || fast.SkipReason != "quarantined" {
		t.Errorf("browser-agnostic rule not applied: %+v", fast)
	}
}

func TestSkipList_InvalidPattern(t *testing.T) {
	if _, err := NewSkipList([]SkipRule{{Title: "(["}}); err == nil {
		t.Fatal("NewSkipList() expected an error for an invalid pattern")
	}
}
