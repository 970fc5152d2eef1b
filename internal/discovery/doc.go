// Package discovery finds registrar backends on the local network with mDNS.
//
// A backend started with "registrar backend --advertise" registers itself as
// a "_registrar._tcp" service. The form and the submit command can then be
// started with --discover instead of a fixed --backend URL: the first backend
// that answers within the scan timeout is used.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	b, err := scanner.Find(ctx)
//	if err != nil {
//	    return err
//	}
//	client := productapi.NewClient(b.BaseURL())
//
// An optional "path" TXT record is appended to the base URL, so a backend
// mounted under a prefix can be advertised as well.
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - The backend must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
