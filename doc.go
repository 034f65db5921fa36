// Package cgt computes UK Capital Gains Tax figures from a brokerage account export.
//
// The core functionalities include:
//   - Loading: decoding the CSV export of a brokerage account into classified
//     transactions (acquisitions, disposals, dividends and cash movements).
//   - Matching: maintaining one Section 104 pool per security and matching each
//     repurchase against the disposals of the previous 30 days (bed and breakfasting).
//   - Conversion: valuing every amount in pounds through a RateProvider, see the
//     hmrc package for the HMRC monthly rates.
//   - Reporting: writing the processed ledger as CSV, globally and per UK tax year,
//     and exporting it as JSON.
//
// Same day trades of a security are not supported and are rejected when processed.
//
// This package serves as the foundational logic for the `cgt` command-line tool.
package cgt
