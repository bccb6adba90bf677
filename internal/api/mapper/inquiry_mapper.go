package mapper

// Display labels for the productInterest enumeration. Kept free of
// HTML-significant characters so they can be embedded in mail bodies
// without further escaping.
var productInterestLabels = map[string]string{
	"beeswax": "Beeswax",
	"honey":   "Honey",
	"both":    "Both Beeswax and Honey",
	"other":   "Other",
}

// Display labels for the estimatedVolume enumeration
var estimatedVolumeLabels = map[string]string{
	"under-500kg": "Under 500 kg",
	"500kg-1mt":   "500 kg – 1 MT",
	"1mt-5mt":     "1 MT – 5 MT",
	"over-5mt":    "Over 5 MT",
	"not-sure":    "Not sure yet",
}

// ProductInterestLabel maps an internal productInterest value to its
// human-readable label. Values outside the enumeration fall back to
// the value itself, which callers must have sanitized already.
func ProductInterestLabel(value string) string {
	if label, ok := productInterestLabels[value]; ok {
		return label
	}
	return value
}

// EstimatedVolumeLabel maps an internal estimatedVolume value to its
// human-readable label, with the same fallback as ProductInterestLabel.
func EstimatedVolumeLabel(value string) string {
	if label, ok := estimatedVolumeLabels[value]; ok {
		return label
	}
	return value
}
