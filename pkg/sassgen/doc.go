// Package sassgen renders component theme Sass source: a @use of the
// platform's theming module, a theme variable built with the component's
// theme function, and a rule that includes the theme's tokens on every
// selector of the component. The source is never compiled here.
package sassgen
