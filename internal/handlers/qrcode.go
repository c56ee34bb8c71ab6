package handlers

import (
	"fmt"
	"image"
	"image/png"
	"net"
	"net/http"

	"github.com/skip2/go-qrcode"
)

// QRCodeHandler serves a PNG QR code pointing at the chart page so it can
// be opened from a phone on the same network.
func QRCodeHandler(host, port string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := pageURL(host, port)
		if err != nil {
			serverError(w, r, err)
			return
		}
		img, err := generateQRCode(url)
		if err != nil {
			serverError(w, r, err)
			return
		}

		// Set headers
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour

		if err := png.Encode(w, img); err != nil {
			serverError(w, r, err)
			return
		}
	}
}

// pageURL uses the listen host unless it is a wildcard, in which case the
// first non-loopback IPv4 address of this machine is advertised.
func pageURL(host, port string) (string, error) {
	switch host {
	case "", "0.0.0.0", "::":
		addrs, err := net.InterfaceAddrs()
		if err != nil {
			return "", err
		}
		host = ""
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				host = ipnet.IP.String()
				break
			}
		}
		if host == "" {
			return "", fmt.Errorf("no LAN address to advertise for wildcard host")
		}
	}
	return fmt.Sprintf("http://%s/", net.JoinHostPort(host, port)), nil
}

func generateQRCode(url string) (image.Image, error) {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.Image(256), nil
}
