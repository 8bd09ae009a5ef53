// Command shipwright automates module releases: it initializes repositories
// that lack module metadata, reconciles version state against the update feed,
// packages the working tree, and publishes releases.
package main
