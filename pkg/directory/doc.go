// Package directory holds the static hospital listing: the department to
// doctor table that drives the appointment form, and the doctor directory
// with its search and filters.
//
// The listing is a YAML document embedded in the binary and parsed once by
// Default. Load parses any other listing with the same shape and rejects
// duplicate keys and dangling department or location references.
//
//	cat := directory.Default()
//	doctors, ok := cat.Table.Doctors("cardiology")
//	found := cat.Directory.Filter(directory.Filter{Search: "chen", Location: "north"})
//	fmt.Println(directory.CountText(len(found))) // Showing 1 doctor
//
// LiveSearch wraps a Directory with the page's filter state: search input
// is debounced and the number of results is announced.
package directory
