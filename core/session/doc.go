// Package session holds the settings of variation editing sessions: how long an
// idle session lives, where and how large combination images may be uploaded,
// and the company ids every new session knows about.
//
// Values load through core/config under the "variation" key, so they are set
// with VARIATION_SESSION_TTL_MINUTES, VARIATION_IMAGE_PREFIX,
// VARIATION_MAX_IMAGE_BYTES and VARIATION_COMPANIES.
package session
