package metrics

import (
	"strconv"
	"strings"
)

// ContentType is the content type of the text exposition format served on
// the scrape endpoint.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

// Expose renders a snapshot into the text exposition format: a # TYPE comment
// per family, then one line per series. Histograms emit cumulative _bucket
// lines (including le="+Inf"), plus _sum and _count. Output is deterministic
// for a given snapshot.
func Expose(snap Snapshot) string {
	var b strings.Builder
	for _, fam := range snap {
		b.WriteString("# TYPE ")
		b.WriteString(fam.Name)
		b.WriteByte(' ')
		b.WriteString(string(fam.Kind))
		b.WriteByte('\n')

		for _, series := range fam.Series {
			switch fam.Kind {
			case KindHistogram:
				writeHistogram(&b, fam.Name, series)
			default:
				writeSample(&b, fam.Name, series.signature, formatValue(series.Value))
			}
		}
	}
	return b.String()
}

func writeHistogram(b *strings.Builder, name string, series SeriesSnapshot) {
	for i, bound := range series.Bounds {
		writeSample(b, name+"_bucket",
			joinSignature(`le="`+formatValue(bound)+`"`, series.signature),
			strconv.FormatUint(series.BucketCounts[i], 10))
	}
	// The +Inf bucket always equals the total observation count.
	writeSample(b, name+"_bucket",
		joinSignature(`le="+Inf"`, series.signature),
		strconv.FormatUint(series.Count, 10))
	writeSample(b, name+"_sum", series.signature, formatValue(series.Sum))
	writeSample(b, name+"_count", series.signature, strconv.FormatUint(series.Count, 10))
}

func writeSample(b *strings.Builder, name, signature, value string) {
	b.WriteString(name)
	if signature != "" {
		b.WriteByte('{')
		b.WriteString(signature)
		b.WriteByte('}')
	}
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}

func joinSignature(first, rest string) string {
	if rest == "" {
		return first
	}
	return first + "," + rest
}

// formatValue renders numbers without locale separators; integral values
// print without a decimal point (3, not 3.0).
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
