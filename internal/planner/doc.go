// Package planner assembles timezone-aware meeting requests.
//
// A MeetingRequest fixes the organizer's wall-clock start, a duration, and a
// set of participants each bound to a catalog city. The planner projects the
// start into every participant's local timezone (with day-boundary
// annotations) and renders a calendar event payload whose start and end are
// unambiguous UTC instants.
//
// All functions here are pure: validation and projection mutate nothing and
// perform no external calls, so a request that fails its structural
// invariants is rejected before any calendar traffic happens.
package planner
