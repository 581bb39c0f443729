package engine

import (
	"testing"
	"time"
)

func TestDomainMemory_SetGet(t *testing.T) {
	dm := NewDomainMemory(time.Hour)
	defer dm.Stop()

	dm.Set("www.amazon.com", "http")
	if got := dm.Get("www.amazon.com"); got != "http" {
		t.Errorf("Get = %q, want http", got)
	}
	if got := dm.Get("www.walmart.com"); got != "" {
		t.Errorf("unknown domain should return empty, got %q", got)
	}
}

func TestDomainMemory_Expiry(t *testing.T) {
	dm := NewDomainMemory(10 * time.Millisecond)
	defer dm.Stop()

	dm.Set("www.bestbuy.com", "rod")
	time.Sleep(30 * time.Millisecond)

	if got := dm.Get("www.bestbuy.com"); got != "" {
		t.Errorf("expired entry should return empty, got %q", got)
	}
}

func TestDomainMemory_Delete(t *testing.T) {
	dm := NewDomainMemory(time.Hour)
	defer dm.Stop()

	dm.Set("www.trendyol.com", "rod-stealth")
	dm.Delete("www.trendyol.com")

	if got := dm.Get("www.trendyol.com"); got != "" {
		t.Errorf("deleted entry should return empty, got %q", got)
	}
}
