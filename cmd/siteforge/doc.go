// Command siteforge stages media files and a site document described by a
// TOML manifest, then exports renamed WebP images, passthrough videos, and an
// updated siteData.json in one run.
package main
