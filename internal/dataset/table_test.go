package dataset

import (
	"reflect"
	"testing"

	"sanggwon/internal/model"
)

func TestTablePeriods(t *testing.T) {
	table := NewTable([]model.Record{
		{Year: 2024, Quarter: 2, DistrictCode: "a", TotalSales: 1},
		{Year: 2023, Quarter: 4, DistrictCode: "a", TotalSales: 2},
		{Year: 2024, Quarter: 1, DistrictCode: "b", TotalSales: 3},
		{Year: 2024, Quarter: 2, DistrictCode: "b", TotalSales: 4},
	})

	wantPeriods := []model.Period{{Year: 2023, Quarter: 4}, {Year: 2024, Quarter: 1}, {Year: 2024, Quarter: 2}}
	if got := table.Periods(); !reflect.DeepEqual(got, wantPeriods) {
		t.Errorf("Periods = %v, want %v", got, wantPeriods)
	}
	if got := table.Years(); !reflect.DeepEqual(got, []int{2023, 2024}) {
		t.Errorf("Years = %v", got)
	}
	if got := table.Quarters(); !reflect.DeepEqual(got, []int{1, 2, 4}) {
		t.Errorf("Quarters = %v", got)
	}
	latest, ok := table.Latest()
	if !ok || latest != (model.Period{Year: 2024, Quarter: 2}) {
		t.Errorf("Latest = %v,%v", latest, ok)
	}
	if !table.HasPeriod(model.Period{Year: 2024, Quarter: 1}) || table.HasPeriod(model.Period{Year: 2022, Quarter: 1}) {
		t.Error("HasPeriod mismatch")
	}

	slice := table.Slice(model.Period{Year: 2024, Quarter: 2})
	if len(slice) != 2 || slice[0].TotalSales != 1 || slice[1].TotalSales != 4 {
		t.Errorf("Slice should keep table order: %v", slice)
	}
}

func TestTableImmutable(t *testing.T) {
	src := []model.Record{{Year: 2024, Quarter: 1, DistrictCode: "a", TotalSales: 10}}
	table := NewTable(src)

	src[0].TotalSales = 99
	if table.At(0).TotalSales != 10 {
		t.Error("table must not alias the input slice")
	}

	out := table.Records()
	out[0].TotalSales = 77
	if table.At(0).TotalSales != 10 {
		t.Error("Records() must return a copy")
	}
}

func TestTableEmpty(t *testing.T) {
	var nilTable *Table
	if nilTable.Len() != 0 || nilTable.Slice(model.Period{Year: 2024, Quarter: 1}) != nil {
		t.Error("nil table should behave as empty")
	}
	if _, ok := NewTable(nil).Latest(); ok {
		t.Error("empty table has no latest period")
	}
}
