// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "strings"

// =============================================================================
// MEDIA URL RESOLUTION
// =============================================================================

// The server returns relative media paths (audio_path, image_path, asset
// names). These helpers compose absolute URLs from those paths. They are
// pure string functions so views can call them without a client and tests
// need no network.

// ChatAudioURL resolves a chat message audio_path to an absolute URL.
func ChatAudioURL(base, modelTag, audioPath string) string {
	return joinURL(base, modelTag, "audio", audioPath)
}

// ChatImageURL resolves a chat message image_path to an absolute URL.
func ChatImageURL(base, modelTag, imagePath string) string {
	return joinURL(base, modelTag, "images", imagePath)
}

// BirdSoundAudioURL resolves a bird sound recording name to an absolute URL.
func BirdSoundAudioURL(base, audioName string) string {
	return joinURL(base, "bird_sounds", "audio", audioName)
}

// BirdMapImageURL resolves a bird map image name to an absolute URL.
func BirdMapImageURL(base, imageName string) string {
	return joinURL(base, "bird_maps", "image", imageName)
}

// NewsletterImageURL resolves a newsletter image name to an absolute URL.
func NewsletterImageURL(base, imageName string) string {
	return joinURL(base, "newsletters", "image", imageName)
}

// joinURL joins a base URL and path segments with single slashes. Relative
// paths from the server may carry their own internal slashes; those are
// kept as-is.
func joinURL(base string, parts ...string) string {
	b := strings.TrimRight(base, "/")
	for _, p := range parts {
		b += "/" + strings.TrimLeft(p, "/")
	}
	return b
}
