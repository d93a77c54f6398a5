package models

import "time"

// EventGroup is one sporting event (or several feed entries for the same match)
// with every raw provider link known for it.
type EventGroup struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Poster        string   `json:"poster,omitempty"`
	Background    string   `json:"background,omitempty"`
	Description   string   `json:"description,omitempty"`
	Time          string   `json:"time"`
	DisplayStatus string   `json:"displayStatus"`
	Category      string   `json:"category,omitempty"`
	Links         []string `json:"links"`
}

// RawEvent is a single entry of the upstream events feed.
type RawEvent struct {
	Title       string `json:"title" yaml:"title"`
	Time        string `json:"time" yaml:"time"`
	Status      string `json:"status" yaml:"status"`
	Category    string `json:"category" yaml:"category"`
	Link        string `json:"link" yaml:"link"`
	Poster      string `json:"poster,omitempty" yaml:"poster"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Snapshot is the full set of event groups published after a refresh.
type Snapshot struct {
	Groups    []EventGroup `json:"groups"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// UserConfig is the per-install configuration encoded in the addon URL.
type UserConfig struct {
	EnabledProviders []string `json:"enabledProviders"`
}
