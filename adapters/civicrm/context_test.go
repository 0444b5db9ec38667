package civicrm

import (
	"context"
	"testing"
)

var pageTable = map[string]string{
	"CRM/Event/Page/EventInfo.tpl":             "id",
	"CRM/Event/Form/Registration/ThankYou.tpl": "eventId",
}

func TestPageResolver(t *testing.T) {
	resolver := NewPageResolver(pageTable)
	cases := []struct {
		name    string
		kind    string
		context map[string]any
		want    string
		ok      bool
	}{
		{name: "event info int", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"id": 14}, want: "14", ok: true},
		{name: "thank you string", kind: "CRM/Event/Form/Registration/ThankYou.tpl", context: map[string]any{"eventId": " 9 "}, want: "9", ok: true},
		{name: "thank you json number", kind: "CRM/Event/Form/Registration/ThankYou.tpl", context: map[string]any{"eventId": float64(3)}, want: "3", ok: true},
		{name: "wrong property", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"eventId": 14}, ok: false},
		{name: "zero id", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"id": 0}, ok: false},
		{name: "fractional id", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"id": 1.5}, ok: false},
		{name: "negative int", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"id": -3}, ok: false},
		{name: "negative string", kind: "CRM/Event/Form/Registration/ThankYou.tpl", context: map[string]any{"eventId": "-3"}, ok: false},
		{name: "negative float", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"id": float64(-2)}, ok: false},
		{name: "non numeric string", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"id": "7; DROP"}, ok: false},
		{name: "leading zeros", kind: "CRM/Event/Page/EventInfo.tpl", context: map[string]any{"id": "007"}, want: "7", ok: true},
		{name: "unknown page", kind: "CRM/Contribute/Page/Main.tpl", context: map[string]any{"id": 14}, ok: false},
		{name: "nil context", kind: "CRM/Event/Page/EventInfo.tpl", context: nil, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := resolver.ResolvePage(context.Background(), tc.kind, tc.context)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
	if resolver.Applies("CRM/Contribute/Page/Main.tpl") {
		t.Fatalf("unexpected applicable page kind")
	}
}

func TestPageResolverCopiesTable(t *testing.T) {
	table := map[string]string{"a.tpl": "id"}
	resolver := NewPageResolver(table)
	table["b.tpl"] = "id"
	if resolver.Applies("b.tpl") {
		t.Fatalf("resolver should not observe later table changes")
	}
}

func TestEmailResolver(t *testing.T) {
	resolver := NewEmailResolver(EmailGroup, EmailOnlineReceipt, EmailOfflineReceipt)

	id, ok := resolver.ResolveEmail(context.Background(), EmailGroup, EmailOnlineReceipt, map[string]any{
		"event": map[string]any{"id": int64(21), "title": "Gala"},
	})
	if !ok || id != "21" {
		t.Fatalf("expected event 21, got (%q, %v)", id, ok)
	}

	if _, ok := resolver.ResolveEmail(context.Background(), "msg_tpl_workflow_contribution", EmailOnlineReceipt, nil); ok {
		t.Fatalf("expected other group to be ignored")
	}
	if _, ok := resolver.ResolveEmail(context.Background(), EmailGroup, "participant_confirm", map[string]any{"event": map[string]any{"id": 1}}); ok {
		t.Fatalf("expected other variant to be ignored")
	}
	if _, ok := resolver.ResolveEmail(context.Background(), EmailGroup, EmailOfflineReceipt, map[string]any{"event": map[string]any{"id": int64(-21)}}); ok {
		t.Fatalf("expected negative event id to be ignored")
	}
	if _, ok := resolver.ResolveEmail(context.Background(), EmailGroup, EmailOfflineReceipt, map[string]any{"event": "21"}); ok {
		t.Fatalf("expected malformed payload to be ignored")
	}
}
