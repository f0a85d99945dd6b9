package sanitize

import "strconv"

// daysToYMD converts days since the Unix epoch (1970-01-01) into a civil
// (year, month, day) triple using Howard Hinnant's days_from_civil
// algorithm run in reverse. It holds for the full proleptic Gregorian
// calendar and avoids a date/time dependency for what is otherwise a
// three-line computation.
func daysToYMD(days uint64) (year, month, day uint64) {
	z := days + 719468
	era := z / 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}

// formatISO8601 renders the given civil date/time as
// "YYYY-MM-DDTHH:MM:SS.mmmZ" without allocating via fmt.Sprintf.
func formatISO8601(year, month, day, hours, minutes, seconds, millis uint64) string {
	buf := make([]byte, 0, 24)
	buf = appendPadded(buf, year, 4)
	buf = append(buf, '-')
	buf = appendPadded(buf, month, 2)
	buf = append(buf, '-')
	buf = appendPadded(buf, day, 2)
	buf = append(buf, 'T')
	buf = appendPadded(buf, hours, 2)
	buf = append(buf, ':')
	buf = appendPadded(buf, minutes, 2)
	buf = append(buf, ':')
	buf = appendPadded(buf, seconds, 2)
	buf = append(buf, '.')
	buf = appendPadded(buf, millis, 3)
	buf = append(buf, 'Z')
	return string(buf)
}

func appendPadded(buf []byte, v uint64, width int) []byte {
	s := strconv.FormatUint(v, 10)
	for i := len(s); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}
