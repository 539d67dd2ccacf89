// Command seed loads a starter set of cities and events into a running
// instance through the admin API.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

type cityPayload struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

type eventPayload struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	EventType    string    `json:"event_type"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	IsGlobalTime bool      `json:"is_global_time"`
}

var cities = []cityPayload{
	{Name: "Auckland", Country: "New Zealand", Timezone: "Pacific/Auckland"},
	{Name: "Sydney", Country: "Australia", Timezone: "Australia/Sydney"},
	{Name: "Tokyo", Country: "Japan", Timezone: "Asia/Tokyo"},
	{Name: "Singapore", Country: "Singapore", Timezone: "Asia/Singapore"},
	{Name: "Berlin", Country: "Germany", Timezone: "Europe/Berlin"},
	{Name: "London", Country: "United Kingdom", Timezone: "Europe/London"},
	{Name: "New York", Country: "USA", Timezone: "America/New_York"},
	{Name: "Los Angeles", Country: "USA", Timezone: "America/Los_Angeles"},
}

func sampleEvents(base time.Time) []eventPayload {
	day := base.AddDate(0, 0, 7).Truncate(24 * time.Hour)
	return []eventPayload{
		{
			Name:        "Community Day",
			Description: "Monthly featured spawn with exclusive move",
			EventType:   "COMMUNITY_DAY",
			// Local kickoff 14:00-17:00, stored as UTC digits.
			StartTime: day.Add(14 * time.Hour),
			EndTime:   day.Add(17 * time.Hour),
		},
		{
			Name:         "Elite Raid Hour",
			Description:  "Simultaneous raid window worldwide",
			EventType:    "RAID_HOUR",
			StartTime:    day.Add(18 * time.Hour),
			EndTime:      day.Add(19 * time.Hour),
			IsGlobalTime: true,
		},
	}
}

func main() {
	var (
		base     string
		adminKey string
		timeout  time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&adminKey, "admin-key", "", "Admin API key")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	if adminKey == "" {
		log.Fatal("-admin-key is required")
	}

	client := &http.Client{Timeout: timeout}
	for _, city := range cities {
		if err := post(client, base+"/cities", adminKey, city); err != nil {
			log.Fatalf("seed city %s: %v", city.Name, err)
		}
		log.Printf("city created: %s (%s)", city.Name, city.Timezone)
	}
	for _, event := range sampleEvents(time.Now().UTC()) {
		if err := post(client, base+"/events", adminKey, event); err != nil {
			log.Fatalf("seed event %s: %v", event.Name, err)
		}
		log.Printf("event created: %s", event.Name)
	}
}

func post(client *http.Client, url, adminKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Key", adminKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
