package services

import (
	"net/url"
	"sort"
	"strings"

	"dispatch-planner-service/internal/domain"
)

// RouteMapLink builds a Google Maps URL for one vehicle's route from its
// depart and arrive events, ordered by proposed time. Returns "" when no
// event carries an address. A single stop yields a search link, two or more
// a directions link with intermediate stops as waypoints.
func RouteMapLink(events []domain.PlanEvent) string {
	var points []domain.PlanEvent
	for _, ev := range events {
		if ev.Status == domain.StatusDepart || ev.Status == domain.StatusArrive {
			points = append(points, ev)
		}
	}
	// Proposed times are "YYYY/MM/DD HH:MM" so lexical order is
	// chronological; range values sort by their start.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].ProposedTime < points[j].ProposedTime
	})

	var addresses []string
	for _, ev := range points {
		if addr := strings.TrimSpace(ev.Address); addr != "" {
			addresses = append(addresses, addr)
		}
	}
	if len(addresses) == 0 {
		return ""
	}

	if len(addresses) == 1 {
		return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(addresses[0])
	}

	link := "https://www.google.com/maps/dir/?api=1&origin=" + url.QueryEscape(addresses[0]) +
		"&destination=" + url.QueryEscape(addresses[len(addresses)-1])
	if len(addresses) > 2 {
		escaped := make([]string, 0, len(addresses)-2)
		for _, addr := range addresses[1 : len(addresses)-1] {
			escaped = append(escaped, url.QueryEscape(addr))
		}
		link += "&waypoints=" + strings.Join(escaped, "|")
	}
	return link
}
