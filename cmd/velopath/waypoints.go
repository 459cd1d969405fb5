package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ondravit/VeloPath/pkg/gpx"
	"github.com/ondravit/VeloPath/pkg/usecases"
)

// parseWaypoints. "lat,lon;lat,lon;..." to waypoints, range checks are left to request validation.
func parseWaypoints(s string) ([]usecases.Waypoint, error) {
	points := make([]usecases.Waypoint, 0)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("waypoint %q is not lat,lon", part)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %q: invalid latitude: %w", part, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %q: invalid longitude: %w", part, err)
		}
		points = append(points, usecases.Waypoint{Lat: lat, Lon: lon})
	}
	return points, nil
}

func readGPXWaypoints(path string, maxPoints int) ([]usecases.Waypoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sampleGPXWaypoints(f, maxPoints)
}

// sampleGPXWaypoints. at most maxPoints evenly spaced track points, first and last point always included.
func sampleGPXWaypoints(r io.Reader, maxPoints int) ([]usecases.Waypoint, error) {
	coords, err := gpx.ReadTrack(r)
	if err != nil {
		return nil, err
	}
	maxPoints = max(maxPoints, 2)

	n := len(coords)
	if n <= maxPoints {
		points := make([]usecases.Waypoint, 0, n)
		for _, c := range coords {
			points = append(points, usecases.Waypoint{Lat: c.Lat, Lon: c.Lon})
		}
		return points, nil
	}

	points := make([]usecases.Waypoint, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		c := coords[i*(n-1)/(maxPoints-1)]
		points = append(points, usecases.Waypoint{Lat: c.Lat, Lon: c.Lon})
	}
	return points, nil
}
