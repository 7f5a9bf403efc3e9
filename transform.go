package main

// ToWorld converts a device pixel position to world space.
func ToWorld(deviceX, deviceY float64, zp ZoomPanSettings) Coordinate {
	return Coordinate{
		X: (deviceX + zp.X) / zp.Zoom,
		Y: (deviceY + zp.Y) / zp.Zoom,
	}
}

// ToDevice is the inverse of ToWorld.
func ToDevice(worldX, worldY float64, zp ZoomPanSettings) (float64, float64) {
	return worldX*zp.Zoom - zp.X, worldY*zp.Zoom - zp.Y
}

func clampZoom(zoom float64) float64 {
	if zoom < minZoom {
		return minZoom
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}

// nextZoomIn steps up by zoomStep, snapping to 1.0 when the step would jump
// over it.
func nextZoomIn(zoom float64) float64 {
	if zoom > 0.70 && zoom < 0.95 {
		return 1.0
	}
	zoom += zoomStep
	if zoom > maxZoom {
		zoom = maxZoom
	}
	return zoom
}

func nextZoomOut(zoom float64) float64 {
	if zoom > 1.05 && zoom < 1.30 {
		return 1.0
	}
	zoom -= zoomStep
	if zoom < minZoom {
		zoom = minZoom
	}
	return zoom
}

// clampPan keeps a pan offset inside [0, extent*zoom].
func clampPan(pan, extent, zoom float64) float64 {
	if pan > extent*zoom {
		pan = extent * zoom
	}
	if pan < 0.0 {
		pan = 0.0
	}
	return pan
}
