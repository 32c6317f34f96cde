// package formatter turns song lists into exports (CSV, Markdown, plain text) and chart datasets
package formatter
