// Package scraper extracts IETF working groups and IRTF research groups from
// their public web pages.
//
// The IETF side reads the group categories from the datatracker index, falling
// back to a fixed list of categories, then every category listing and the
// detail page of each listed group. The IRTF side reads a single groups page,
// trying its navigation dropdown, its headed sections and finally any list of
// links, and then each group's page.
//
// Failures are local: an unavailable listing skips that category and an
// unavailable detail page drops that one group. Only context cancellation
// aborts a run.
package scraper
