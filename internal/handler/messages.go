// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// User-facing messages. The audience is Bengali-speaking, so every
// message the client may show verbatim is in Bengali.
const (
	MsgGenericError       = "কিছু একটা সমস্যা হয়েছে। আবার চেষ্টা করুন।"
	MsgInvalidCredentials = "ইমেইল বা পাসওয়ার্ড ভুল হয়েছে।"
	MsgEmailTaken         = "এই ইমেইল দিয়ে ইতিমধ্যে অ্যাকাউন্ট খোলা আছে।"
	MsgPasswordTooShort   = "পাসওয়ার্ড কমপক্ষে ৬ অক্ষরের হতে হবে।"
	MsgInvalidEmail       = "সঠিক ইমেইল ঠিকানা দিন।"
	MsgPostSaveError      = "পোস্ট সেভ করতে সমস্যা হয়েছে।"
	MsgPostNotFound       = "পোস্টটি খুঁজে পাওয়া যায়নি।"
	MsgTitleRequired      = "শিরোনাম লিখুন।"
	MsgContentRequired    = "কন্টেন্ট লিখুন।"
	MsgInvalidCategory    = "বিভাগটি সঠিক নয়।"
	MsgCommentRequired    = "মন্তব্য লিখুন।"
	MsgTopicRequired      = "বিষয় লিখুন।"
	MsgAssistDisabled     = "AI সহায়তা এই মুহূর্তে বন্ধ আছে।"
)
