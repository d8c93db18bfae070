// Package utils provides small conversion helpers shared by the feature packages:
// decimal parsing for prices and measurements, and lenient bool conversion for
// query parameters.
package utils
