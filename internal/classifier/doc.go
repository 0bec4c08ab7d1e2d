// Package classifier extracts anchors from rendered markup and sorts
// them into three disjoint buckets: document links, content links, and
// navigation links.
//
// The classifier is a heuristic region detector. Anchors inside
// structural navigation landmarks (nav, header, footer, sidebar, menu
// selectors) are navigation; anchors inside announcement or promotional
// regions (news, alert, post, article selectors) are dropped outright;
// everything else is content. False positives and negatives are
// expected and acceptable; the point is to keep promotional noise out
// of the site map, and precision there is preferred over recall.
//
// Email links (mailto: or a bare address), phone links (tel: or a loose
// number), bare fragments, and javascript: pseudo-links never appear in
// any bucket.
package classifier
