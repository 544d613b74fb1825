package calendar

import "timedeck/internal/models"

// fixedHolidays is the built-in reference dataset. It is not user-editable
// and always wins over custom ranges covering the same date.
var fixedHolidays = []models.Holiday{
	{Date: "2024-01-26", Name: "Republic Day"},
	{Date: "2024-03-08", Name: "Holi"},
	{Date: "2024-03-29", Name: "Good Friday"},
	{Date: "2024-04-11", Name: "Eid ul-Fitr"},
	{Date: "2024-04-17", Name: "Ram Navami"},
	{Date: "2024-08-15", Name: "Independence Day"},
	{Date: "2024-08-19", Name: "Raksha Bandhan"},
	{Date: "2024-08-26", Name: "Janmashtami"},
	{Date: "2024-10-02", Name: "Gandhi Jayanti"},
	{Date: "2024-10-12", Name: "Dussehra"},
	{Date: "2024-11-01", Name: "Diwali"},
	{Date: "2024-11-15", Name: "Guru Nanak Jayanti"},
	{Date: "2024-12-25", Name: "Christmas Day"},
	{Date: "2025-01-26", Name: "Republic Day"},
	{Date: "2025-03-14", Name: "Holi"},
	{Date: "2025-08-15", Name: "Independence Day"},
	{Date: "2025-10-02", Name: "Gandhi Jayanti"},
	{Date: "2025-10-20", Name: "Diwali"},
	{Date: "2025-12-25", Name: "Christmas Day"},
}
