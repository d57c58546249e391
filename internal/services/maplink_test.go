package services

import (
	"testing"

	"dispatch-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func routeEvent(status domain.EventStatus, proposed, address string) domain.PlanEvent {
	return domain.PlanEvent{Status: status, ProposedTime: proposed, Address: address}
}

func TestRouteMapLinkDirectionsWithWaypoints(t *testing.T) {
	events := []domain.PlanEvent{
		routeEvent(domain.StatusArrive, "2025/06/15 12:00", "名古屋市中区"),
		routeEvent(domain.StatusDepart, "2025/06/15 09:00", "東京都千代田区"),
		routeEvent(domain.StatusTransit, "2025/06/15 09:30", "無視される移動"),
		routeEvent(domain.StatusArrive, "2025/06/15 18:00", "大阪市北区"),
	}

	link := RouteMapLink(events)

	assert.Contains(t, link, "https://www.google.com/maps/dir/?api=1")
	assert.Contains(t, link, "origin="+"%E6%9D%B1%E4%BA%AC%E9%83%BD%E5%8D%83%E4%BB%A3%E7%94%B0%E5%8C%BA")
	assert.Contains(t, link, "destination="+"%E5%A4%A7%E9%98%AA%E5%B8%82%E5%8C%97%E5%8C%BA")
	assert.Contains(t, link, "waypoints="+"%E5%90%8D%E5%8F%A4%E5%B1%8B%E5%B8%82%E4%B8%AD%E5%8C%BA")
}

func TestRouteMapLinkSingleAddressIsSearch(t *testing.T) {
	events := []domain.PlanEvent{
		routeEvent(domain.StatusArrive, "2025/06/15 10:00", "札幌市中央区"),
	}

	link := RouteMapLink(events)

	assert.Contains(t, link, "https://www.google.com/maps/search/?api=1&query=")
}

func TestRouteMapLinkNoAddresses(t *testing.T) {
	events := []domain.PlanEvent{
		routeEvent(domain.StatusArrive, "2025/06/15 10:00", ""),
		routeEvent(domain.StatusStay, "2025/06/15 11:00", "住所はあるが対象外"),
	}

	assert.Empty(t, RouteMapLink(events))
}

func TestRouteMapLinkTwoAddressesNoWaypoints(t *testing.T) {
	events := []domain.PlanEvent{
		routeEvent(domain.StatusDepart, "2025/06/15 09:00", "東京都千代田区"),
		routeEvent(domain.StatusArrive, "2025/06/15 18:00", "大阪市北区"),
	}

	link := RouteMapLink(events)

	assert.Contains(t, link, "dir/?api=1&origin=")
	assert.NotContains(t, link, "waypoints=")
}
