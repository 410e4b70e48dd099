package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRewriteHooks{}
	r.OnPassStart(ctx, 1, 100)
	r.OnPassComplete(ctx, 1, 100, 80, time.Second)
	r.OnVerifyComplete(ctx, time.Second, errors.New("differ"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "result", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Rewrite().(NoopRewriteHooks); !ok {
		t.Error("Rewrite() should return NoopRewriteHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customRewrite := &testRewriteHooks{}
	SetRewriteHooks(customRewrite)
	if Rewrite() != customRewrite {
		t.Error("SetRewriteHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Rewrite().(NoopRewriteHooks); !ok {
		t.Error("Reset() should restore NoopRewriteHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRewriteHooks{}
	SetRewriteHooks(custom)
	SetRewriteHooks(nil)
	if Rewrite() != custom {
		t.Error("SetRewriteHooks(nil) should be ignored")
	}
}

type testRewriteHooks struct{ NoopRewriteHooks }
type testCacheHooks struct{ NoopCacheHooks }
