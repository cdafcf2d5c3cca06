package kit

import (
	"context"
	"reflect"
	"testing"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, request any) (any, error) {
				calls = append(calls, name)
				return next(ctx, request)
			}
		}
	}
	ep := func(context.Context, any) (any, error) {
		calls = append(calls, "endpoint")
		return "done", nil
	}

	resp, err := Chain(mw("a"), mw("b"), mw("c"))(ep)(context.Background(), nil)
	if err != nil || resp != "done" {
		t.Fatalf("chained endpoint = (%v, %v)", resp, err)
	}
	if want := []string{"a", "b", "c", "endpoint"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("call order = %v, want %v", calls, want)
	}
}
