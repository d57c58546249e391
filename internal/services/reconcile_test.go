package services

import (
	"testing"

	"dispatch-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reconcileLocations = []domain.Location{
	{Name: "丸の内倉庫", Code: "T001", Address: "東京都千代田区丸の内１丁目"},
	{Name: "札幌配送センター", Code: "H001", Address: "北海道札幌市中央区北1条西2丁目"},
}

func TestReconcileRoundTrip(t *testing.T) {
	raw := "計画のサマリーです。\n---\n```json\n" +
		`[{"d": "トラック1", "proposed_time": "2025/06/15 08:30", "desired_time": "2025/06/15 08:30", "time_difference": "00:00", "status": "到着", "location_id": "", "name_code": "T001", "location_name": "丸の内倉庫", "remarks": "荷物引き取り"}]` +
		"\n```"

	res := ReconcileResponse(raw, reconcileLocations)

	require.True(t, res.OK())
	assert.Equal(t, "計画のサマリーです。", res.Summary)
	require.Len(t, res.Events, 1)

	ev := res.Events[0]
	assert.Equal(t, "トラック1", ev.Vehicle)
	assert.Equal(t, "2025/06/15 08:30", ev.ProposedTime)
	assert.Equal(t, "2025/06/15 08:30", ev.DesiredTime)
	assert.Equal(t, "00:00", ev.TimeDifference)
	assert.Equal(t, domain.StatusArrive, ev.Status)
	assert.Equal(t, "到着", ev.StatusLabel)
	assert.Equal(t, "", ev.LocationID)
	assert.Equal(t, "T001", ev.LocationCode)
	assert.Equal(t, "丸の内倉庫", ev.LocationName)
	assert.Equal(t, "東京都千代田区丸の内１丁目", ev.Address)
	assert.Equal(t, "荷物引き取り", ev.Remarks)
}

func TestReconcileMovementRangeReconstruction(t *testing.T) {
	raw := "s\n---\n" +
		`[
		  {"d": "トラック1", "status": "移動", "proposed_time": "2025/06/15 09:00"},
		  {"d": "トラック1", "status": "到着", "proposed_time": "2025/06/15 11:00"}
		]`

	res := ReconcileResponse(raw, nil)

	require.True(t, res.OK())
	require.Len(t, res.Events, 2)
	assert.Equal(t, "2025/06/15 09:00 - 2025/06/15 11:00", res.Events[0].ProposedTime)
	assert.Equal(t, "2025/06/15 11:00", res.Events[1].ProposedTime)
}

func TestReconcileFerryTransitPairsWithDisembark(t *testing.T) {
	raw := "s\n---\n" +
		`[
		  {"d": "トラック1", "status": "フェリー移動", "proposed_time": "2025/06/15 22:00"},
		  {"d": "トラック1", "status": "フェリー乗船中休息", "proposed_time": "2025/06/15 23:00"},
		  {"d": "トラック1", "status": "フェリー下船", "proposed_time": "2025/06/16 06:00"}
		]`

	res := ReconcileResponse(raw, nil)

	require.True(t, res.OK())
	require.Len(t, res.Events, 3)
	// The rest event is not arrival-like; the range pairs with the disembark.
	assert.Equal(t, "2025/06/15 22:00 - 2025/06/16 06:00", res.Events[0].ProposedTime)
}

func TestReconcileUnwrapsNestedLists(t *testing.T) {
	raw := "s\n---\n" + `[[{"d": "トラック1", "status": "出発", "proposed_time": "2025/06/15 09:00"}]]`

	res := ReconcileResponse(raw, nil)

	require.True(t, res.OK())
	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.StatusDepart, res.Events[0].Status)
}

func TestReconcileBodyWithoutJSONArray(t *testing.T) {
	raw := "サマリーのみで、JSONがありません。\n---\nここには配列がありません。"

	res := ReconcileResponse(raw, nil)

	assert.Equal(t, ReconcileMalformedShape, res.Kind)
	assert.Empty(t, res.Events)
	assert.Contains(t, res.Diagnostic(), raw)
}

func TestReconcileInvalidJSON(t *testing.T) {
	raw := "s\n---\n[{\"d\": \"トラック1\", }]"

	res := ReconcileResponse(raw, nil)

	assert.Equal(t, ReconcileInvalidJSON, res.Kind)
	assert.Error(t, res.Cause)
	assert.Contains(t, res.Diagnostic(), "---受信データ---")
	assert.Contains(t, res.Diagnostic(), raw)
}

func TestReconcileMissingSeparator(t *testing.T) {
	raw := "区切り線のない応答テキスト"

	res := ReconcileResponse(raw, nil)

	assert.Equal(t, ReconcileMalformedShape, res.Kind)
	assert.Equal(t, raw, res.Summary)
}

func TestReconcileSkipsNonObjectsAndEmptyLines(t *testing.T) {
	raw := "s\n---\n" +
		`[
		  "ただの文字列",
		  {"d": "", "status": "到着", "proposed_time": "2025/06/15 09:00"},
		  {"d": "トラック2", "status": "", "proposed_time": "2025/06/15 09:00"},
		  {"d": "トラック2", "status": "滞在", "proposed_time": "2025/06/15 09:30"}
		]`

	res := ReconcileResponse(raw, nil)

	require.True(t, res.OK())
	require.Len(t, res.Events, 1)
	assert.Equal(t, "トラック2", res.Events[0].Vehicle)
	assert.Equal(t, domain.StatusStay, res.Events[0].Status)
}

func TestReconcileUnknownStatusPreservedVerbatim(t *testing.T) {
	raw := "s\n---\n" + `[{"d": "トラック1", "status": "荷待ち", "proposed_time": "2025/06/15 09:00"}]`

	res := ReconcileResponse(raw, nil)

	require.True(t, res.OK())
	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.StatusUnrecognized, res.Events[0].Status)
	assert.Equal(t, "荷待ち", res.Events[0].StatusLabel)
}

func TestReconcileUnknownAddressCodeYieldsEmptyAddress(t *testing.T) {
	raw := "s\n---\n" + `[{"d": "トラック1", "status": "到着", "name_code": "X999"}]`

	res := ReconcileResponse(raw, reconcileLocations)

	require.True(t, res.OK())
	require.Len(t, res.Events, 1)
	assert.Equal(t, "", res.Events[0].Address)
}
