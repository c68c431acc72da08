package cache

import (
	"testing"

	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
)

func TestProductKey(t *testing.T) {
	if got := ProductKey(42); got != "product:42" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestListKey(t *testing.T) {
	cases := []struct {
		name      string
		filter    repository.ProductFilter
		want      string
		cacheable bool
	}{
		{"default listing", repository.ProductFilter{Limit: 20}, "products:active:limit=20", true},
		{"explicit status", repository.ProductFilter{Status: model.ProductStatusSoldOut, Limit: 10}, "products:sold_out:limit=10", true},
		{"search query", repository.ProductFilter{Query: "shoes"}, "", false},
		{"second page", repository.ProductFilter{Offset: 20}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ListKey(tc.filter)
			if ok != tc.cacheable {
				t.Fatalf("cacheable = %v, want %v", ok, tc.cacheable)
			}
			if got != tc.want {
				t.Fatalf("key = %q, want %q", got, tc.want)
			}
		})
	}
}
