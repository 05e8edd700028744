// Package icons defines the icon identifiers used by capture pages.
//
// The catalog maps stable icon identifiers to human-readable labels so that
// templates can name intent without dictating presentation. Markup references
// icons through the Lucide sprite emitted once per page.
package icons
