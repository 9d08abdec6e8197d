package testutil

import "strings"

// SampleDiffSmall is a small staged change used across tests.
const SampleDiffSmall = `diff --git a/main.go b/main.go
index 1234567..abcdefg 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,10 @@
 package main

+import "fmt"
+
 func main() {
-    println("Hello")
+    fmt.Println("Hello, World!")
 }
`

// SampleDiffLarge exceeds the default diff limit so truncation kicks in.
var SampleDiffLarge = func() string {
	const header = `diff --git a/generated.go b/generated.go
index 1234567..abcdefg 100644
--- a/generated.go
+++ b/generated.go
@@ -1,5 +1,1000 @@
 package main

`
	return header + strings.Repeat("+// generated table entry, one of many hundreds\n", 200)
}()

// SampleReply is a well-formed model reply with three numbered candidates.
const SampleReply = `1. Add print statement
2. Introduce debug output
3. Insert print call
`

// SampleMessages are the candidates parsed from SampleReply, in order.
var SampleMessages = []string{
	"Add print statement",
	"Introduce debug output",
	"Insert print call",
}

// SampleReplyNoisy buries the numbered list in chatter and quotes, the way
// instruct models actually answer.
const SampleReplyNoisy = `Sure! Here are three commit message suggestions for your changes:

1. 'Add print statement'
2. 'Introduce debug output'
3. 'Insert print call'

Let me know if you would like different options.`

// SampleReplyAlternate is a second well-formed reply, distinct from
// SampleReply, for regeneration scripts.
const SampleReplyAlternate = `1. Emit value for inspection
2. Add temporary debug print
3. Log intermediate state
`
