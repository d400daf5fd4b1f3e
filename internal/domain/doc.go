// Package domain models the daily wildfire situation snapshots published by
// the upstream report pipeline.
//
// # Data Source
//
// Snapshots are derived from the NIFC Incident Management Situation Report
// (IMSR, https://www.nifc.gov/nicc-files/sitreprt.pdf). The upstream pipeline
// downloads the PDF once a day, extracts the national GACC rollup table and the
// per-region incident tables, and writes them as JSON documents under a date
// key directory:
//
//	{date}/regions/region_key_{date}.json        region id -> display name
//	{date}/regions/Region_{id}_{date}.json       regional incident rows
//	{date}/regions/region_summaries_{date}.json  display name -> summary lines
//	{date}/fire_summary_{date}.json              national GACC rows
//	{date}/daily_summary.json                    {header, summary}
//	{date}/predictive_summary.txt                predictive services text
//
// # Report Conventions
//
// Every value is copied from the PDF as text, so numeric columns carry
// thousands separators ("12,345"), signs ("+12", "-4"), and sentinels:
//
//	Total PPL:  "NNN/MMM" (assigned/requested) or "UNK" when unreported.
//	%:          containment percent, usually "0".."100", occasionally "".
//	$$ CTD:     cost to date, kept verbatim ("$10,000", "$1.2M").
//
// National GACC rows have no containment or cost columns and instead report
// the number of active incidents in the area.
//
// # Normalization
//
// Raw rows are decoded at the document boundary into RegionalRecord or
// NationalRecord and normalized into Incident. Normalization never fails:
// unparseable or sentinel values become 0 so chart scales are always defined.
package domain
