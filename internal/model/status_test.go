package model

import (
	"testing"
	"time"
)

func TestDocumentStatusAt(t *testing.T) {
	now := mustTime(t, "2024-06-01T00:00:00Z")

	cases := []struct {
		name     string
		expiry   time.Time
		warnDays int
		want     DocumentStatus
	}{
		{"expires in 10 days with 30 day warn", now.AddDate(0, 0, 10), 30, DocumentStatusExpiringSoon},
		{"expired yesterday", now.AddDate(0, 0, -1), 30, DocumentStatusExpired},
		{"expires in 40 days", now.AddDate(0, 0, 40), 30, DocumentStatusValid},
		{"expires exactly at warn boundary", now.AddDate(0, 0, 30), 30, DocumentStatusExpiringSoon},
		{"expires this instant", now, 30, DocumentStatusExpiringSoon},
		{"zero warn threshold, future expiry", now.AddDate(0, 0, 5), 0, DocumentStatusValid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DocumentStatusAt(tc.expiry, now, tc.warnDays); got != tc.want {
				t.Errorf("DocumentStatusAt() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestServiceStatusFor(t *testing.T) {
	cases := []struct {
		name      string
		currentKm int
		nextKm    int
		dueSoonKm int
		want      ServiceStatus
	}{
		{"well before due", 9000, 10000, 500, ServiceStatusOK},
		{"inside due-soon band", 9800, 10000, 500, ServiceStatusDueSoon},
		{"past due", 10100, 10000, 500, ServiceStatusOverdue},
		{"exactly at due mileage", 10000, 10000, 500, ServiceStatusOverdue},
		{"exactly at due-soon boundary", 9500, 10000, 500, ServiceStatusDueSoon},
		{"one km before due-soon band", 9499, 10000, 500, ServiceStatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ServiceStatusFor(tc.currentKm, tc.nextKm, tc.dueSoonKm); got != tc.want {
				t.Errorf("ServiceStatusFor() = %s, want %s", got, tc.want)
			}
		})
	}
}
