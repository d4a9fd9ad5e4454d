package utility

import (
	"testing"
	"time"
)

func TestCache_SetGetDelete(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	cache.Set("user:1", "value")
	v, ok := cache.Get("user:1")
	if !ok {
		t.Fatal("key vừa set phải tồn tại")
	}
	if v != "value" {
		t.Errorf("giá trị không khớp: %v", v)
	}

	cache.Delete("user:1")
	if _, ok := cache.Get("user:1"); ok {
		t.Error("key đã delete không được tồn tại")
	}
}

func TestCache_MissingKey(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	if _, ok := cache.Get("khong-ton-tai"); ok {
		t.Error("key chưa set không được tồn tại")
	}
}

func TestCache_Expiry(t *testing.T) {
	cache := NewCache(20*time.Millisecond, time.Minute)
	defer cache.Stop()

	cache.Set("user:2", "value")
	time.Sleep(40 * time.Millisecond)

	if _, ok := cache.Get("user:2"); ok {
		t.Error("key quá TTL phải được coi là hết hạn kể cả khi chưa cleanup")
	}
}

func TestCache_Overwrite(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	cache.Set("user:3", int64(1))
	cache.Set("user:3", int64(2))

	v, ok := cache.Get("user:3")
	if !ok {
		t.Fatal("key phải tồn tại sau khi ghi đè")
	}
	if v != int64(2) {
		t.Errorf("giá trị phải là bản ghi đè mới nhất, nhận: %v", v)
	}
}
