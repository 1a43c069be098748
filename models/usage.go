// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// UsageReport is submitted once per saved voice session.
type UsageReport struct {
	Seconds int64 `json:"seconds"`
}

// UsageRecord is one stored usage entry.
type UsageRecord struct {
	ID        int64
	UserID    int64
	Minutes   int64
	CreatedAt time.Time
}

// TableName returns the name of the database table
// associated with the UsageRecord model.
func (u UsageRecord) TableName() string {
	return "usage_records"
}

// UsageSummary aggregates a user's recorded minutes.
type UsageSummary struct {
	TotalMinutes int64 `json:"totalMinutes"`
	MonthMinutes int64 `json:"monthMinutes"`
}
