// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package sheets serves crypto prices and price alerts kept in a Google Sheets spreadsheet to a
dashboard frontend.

The spreadsheet is read either through the Sheets API, authenticated as a Google service account,
or from its published CSV export. Service account credentials are taken from a local
service-account-key.json, a base64 encoded key file in GOOGLE_SERVICE_ACCOUNT_BASE64 or the
GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_PRIVATE_KEY pair, in that order.

crypto-sheets supports the following commands:

  - serve, to run the JSON endpoints
  - get, to download a worksheet as JSON
  - check-credentials, to check which service account would be used and whether it is accepted
  - version
*/
package sheets
