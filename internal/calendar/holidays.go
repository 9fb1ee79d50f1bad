package calendar

import (
	"fmt"
	"sort"
)

type fixedHoliday struct {
	month, day int
	name       string
	nameEn     string
	kind       HolidayType
}

// Fixed-date holidays only; lunar holidays such as Makha Bucha come from the
// observance resolver.
var fixedHolidays = []fixedHoliday{
	{1, 1, "วันขึ้นปีใหม่", "New Year's Day", HolidayPublic},
	{1, 16, "วันครู", "Teachers' Day", HolidayObservance},
	{2, 14, "วันวาเลนไทน์", "Valentine's Day", HolidayCultural},
	{4, 6, "วันจักรี", "Chakri Memorial Day", HolidayPublic},
	{4, 13, "วันสงกรานต์", "Songkran Festival", HolidayPublic},
	{4, 14, "วันสงกรานต์", "Songkran Festival", HolidayPublic},
	{4, 15, "วันสงกรานต์", "Songkran Festival", HolidayPublic},
	{5, 1, "วันแรงงานแห่งชาติ", "National Labour Day", HolidayPublic},
	{5, 4, "วันฉัตรมงคล", "Coronation Day", HolidayPublic},
	{6, 3, "วันเฉลิมพระชนมพรรษาสมเด็จพระราชินี", "Queen Suthida's Birthday", HolidayPublic},
	{7, 28, "วันเฉลิมพระชนมพรรษาพระบาทสมเด็จพระเจ้าอยู่หัว", "King Vajiralongkorn's Birthday", HolidayPublic},
	{8, 12, "วันแม่แห่งชาติ", "Mother's Day", HolidayPublic},
	{10, 13, "วันคล้ายวันสวรรคตรัชกาลที่ 9", "King Bhumibol Memorial Day", HolidayPublic},
	{10, 23, "วันปิยมหาราช", "Chulalongkorn Day", HolidayPublic},
	{10, 31, "วันฮาโลวีน", "Halloween", HolidayCultural},
	{12, 5, "วันพ่อแห่งชาติ", "Father's Day", HolidayPublic},
	{12, 10, "วันรัฐธรรมนูญ", "Constitution Day", HolidayPublic},
	{12, 25, "วันคริสต์มาส", "Christmas Day", HolidayCultural},
	{12, 31, "วันสิ้นปี", "New Year's Eve", HolidayPublic},
}

// Holidays projects the fixed-date table onto year. month 0 returns the whole
// year; any other value outside 1..12 returns nothing.
func Holidays(year, month int) []Holiday {
	out := []Holiday{}
	if year <= 0 || month < 0 || month > 12 {
		return out
	}
	for _, h := range fixedHolidays {
		if month != 0 && h.month != month {
			continue
		}
		out = append(out, Holiday{
			Date:   fmt.Sprintf("%04d-%02d-%02d", year, h.month, h.day),
			Name:   h.name,
			NameEn: h.nameEn,
			Type:   h.kind,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
